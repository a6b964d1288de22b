package models

import (
	"time"
)

// Order is the aggregate root for a customer order. Leads are imported
// through the same table with Interface set to "leads" and a zero
// CustomerID until conversion.
type Order struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	CustomerID         uint       `json:"customer_id" gorm:"index"`
	IssueDate          time.Time  `json:"issue_date" gorm:"not null"`
	DueDate            *time.Time `json:"due_date"`
	Currency           string     `json:"currency" gorm:"type:varchar(3);default:'LKR'"`
	Subtotal           float64    `json:"subtotal" gorm:"type:decimal(12,2);not null;default:0"`
	Discount           float64    `json:"discount" gorm:"type:decimal(12,2);not null;default:0"`
	DeliveryFee        float64    `json:"delivery_fee" gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount        float64    `json:"total_amount" gorm:"type:decimal(12,2);not null;default:0"`
	Notes              string     `json:"notes" gorm:"type:text"`
	Status             string     `json:"status" gorm:"index;default:'pending'"`
	PayStatus          string     `json:"pay_status" gorm:"index;default:'unpaid'"`
	PayDate            *time.Time `json:"pay_date"`
	CourierID          *uint      `json:"courier_id"`
	TrackingNumber     string     `json:"tracking_number"`
	CancellationReason string     `json:"cancellation_reason"`
	DispatchNote       string     `json:"dispatch_note"`
	Interface          string     `json:"interface" gorm:"index;default:'individual'"`
	LeadName           string     `json:"lead_name"`
	LeadCity           string     `json:"lead_city"`
	LeadPhone          string     `json:"lead_phone"`
	Version            uint       `json:"version" gorm:"not null;default:0"`
	CreatedBy          uint       `json:"created_by" gorm:"not null"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payments []Payment   `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "order_header"
}

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderDispatch OrderStatus = "dispatch"
	OrderDone     OrderStatus = "done"
	OrderCancel   OrderStatus = "cancel"
)

type PayStatus string

const (
	PayUnpaid  PayStatus = "unpaid"
	PayPartial PayStatus = "partial"
	PayPaid    PayStatus = "paid"
)

type OrderInterface string

const (
	InterfaceIndividual OrderInterface = "individual"
	InterfaceLeads      OrderInterface = "leads"
)

const (
	CurrencyLKR = "LKR"
	CurrencyUSD = "USD"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderDispatch, OrderDone, OrderCancel:
		return true
	}
	return false
}

// ValidCurrency reports whether c is a supported currency code.
func ValidCurrency(c string) bool {
	return c == CurrencyLKR || c == CurrencyUSD
}
