package models

import "time"

// CustomerSession tracks anonymous devices by the client-generated
// device identifier, so the menu can greet returning customers
// without a login.
type CustomerSession struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DeviceID      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"device_id"`
	TableID       uint      `gorm:"index" json:"table_id"`
	UserID        uint      `gorm:"index" json:"user_id"`
	CustomerName  string    `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone"`
	VisitCount    int       `gorm:"not null;default:1" json:"visit_count"`
	FirstVisit    time.Time `gorm:"not null" json:"first_visit"`
	LastVisit     time.Time `gorm:"not null" json:"last_visit"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
