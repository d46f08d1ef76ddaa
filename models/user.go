package models

import "time"

// Role is the closed set of account roles. Authorization decisions
// compare against these constants, never raw request strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is a member of the role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:varchar(255);not null" json:"-"`
	RestaurantName string    `gorm:"type:varchar(255)" json:"restaurant_name"`
	Phone          string    `gorm:"type:varchar(50)" json:"phone"`
	Role           Role      `gorm:"type:varchar(20);not null" json:"role"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
