package models

import (
	"time"
)

// UserLog is the append-only audit trail. Rows are only ever inserted;
// there is no update or delete path anywhere in the codebase.
type UserLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Action    string    `json:"action" gorm:"not null"`
	OrderID   uint      `json:"order_id" gorm:"index"`
	Details   string    `json:"details" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserLog) TableName() string {
	return "user_logs"
}

const (
	ActionCreateOrder = "create_order"
	ActionDispatch    = "dispatch_order"
	ActionCancel      = "cancel_order"
	ActionPayment     = "mark_paid"
	ActionComplete    = "complete_order"
	ActionNote        = "append_note"
	ActionLeadImport  = "lead_import"
	ActionLeadStatus  = "lead_status"
	ActionLeadConvert = "lead_convert"
	ActionLogin       = "login"
)
