package models

import (
	"time"
)

// OrderItem is one product line within an order. Status and PayStatus
// always mirror the parent header; every transition updates both tables
// in the same transaction.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"index;not null"`
	ProductID uint      `json:"product_id" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Discount  float64   `json:"discount" gorm:"type:decimal(12,2);not null;default:0"`
	Status    string    `json:"status" gorm:"default:'pending'"`
	PayStatus string    `json:"pay_status" gorm:"default:'unpaid'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
