package models

import (
	"time"
)

// Branding is a single-row configuration table for company identity.
type Branding struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyName string    `json:"company_name" gorm:"not null"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Logo        string    `json:"logo"`
	Favicon     string    `json:"favicon"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Branding) TableName() string {
	return "branding"
}
