package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	TableNumber string    `gorm:"type:varchar(50);not null" json:"table_number"`
	QRCodeID    string    `gorm:"type:varchar(36);uniqueIndex" json:"qr_code_id"`
	QRCodeURL   string    `gorm:"type:varchar(255)" json:"qr_code_url"`
	Room        bool      `gorm:"not null;default:false" json:"room"`
	Location    string    `gorm:"type:varchar(100)" json:"location"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
