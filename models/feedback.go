package models

import "time"

type Feedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	OrderID     uint      `gorm:"index" json:"order_id"`
	OrderNumber string    `gorm:"type:varchar(32)" json:"order_number"`
	TableNumber string    `gorm:"type:varchar(50)" json:"table_number"`
	TotalAmount float64   `gorm:"type:decimal(10,2)" json:"total_amount"`
	Rating      int       `gorm:"not null" json:"rating"` // 1-5
	Comments    string    `gorm:"type:text" json:"comments"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
