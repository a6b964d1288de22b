package models

import (
	"time"
)

// Payment records money collected against an order. MarkPaid inserts
// exactly one row with AmountPaid equal to the order total.
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"index;not null"`
	AmountPaid float64   `json:"amount_paid" gorm:"type:decimal(12,2);not null"`
	Method     string    `json:"method" gorm:"not null"`
	Date       time.Time `json:"date" gorm:"not null"`
	PayBy      uint      `json:"pay_by" gorm:"not null"`
	Slip       string    `json:"slip"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

const (
	PayMethodCash     = "cash"
	PayMethodTransfer = "bank_transfer"
	PayMethodCard     = "card"
)
