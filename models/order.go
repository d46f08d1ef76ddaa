package models

import "time"

// Order workflow: pending -> confirmed -> preparing -> ready -> completed.
// cancelled is terminal from any non-completed state.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index;not null" json:"user_id"`
	TableID       uint        `gorm:"index" json:"table_id"`
	TableNumber   string      `gorm:"type:varchar(50)" json:"table_number"`
	DeviceID      string      `gorm:"type:varchar(64);index" json:"device_id"`
	CustomerName  string      `gorm:"type:varchar(255)" json:"customer_name"`
	OrderNumber   string      `gorm:"type:varchar(32);index;not null" json:"order_number"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax           float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Total         float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CustomerNotes string      `gorm:"type:text" json:"customer_notes"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

type OrderItem struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	OrderID             uint    `gorm:"index;not null" json:"order_id"`
	MenuItemID          uint    `gorm:"not null" json:"menu_item_id"`
	MenuItemName        string  `gorm:"type:varchar(255);not null" json:"menu_item_name"`
	Price               float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity            int     `gorm:"not null" json:"quantity"`
	SpecialInstructions string  `gorm:"type:text" json:"special_instructions"`
}
