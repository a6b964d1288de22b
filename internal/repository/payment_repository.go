package repository

import (
	"backoffice/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is read-only: payments are inserted inside order
// transitions through OrderRepository.CreatePayment.
type PaymentRepository interface {
	GetByOrderID(orderID uint) ([]models.Payment, error)
	GetAll() ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByOrderID(orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("id DESC").Find(&payments).Error
	return payments, err
}
