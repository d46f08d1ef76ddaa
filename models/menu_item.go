package models

import "time"

type MenuItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category        string    `gorm:"type:varchar(100)" json:"category"`
	ImageURL        string    `gorm:"type:varchar(255)" json:"image_url"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	Allergens       string    `gorm:"type:varchar(255)" json:"allergens"` // comma-separated, e.g. "nuts,dairy"
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	Featured        bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
