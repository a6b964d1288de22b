package repository

import (
	"backoffice/internal/models"

	"gorm.io/gorm"
)

type CourierRepository interface {
	Create(courier *models.Courier) error
	GetByID(id uint) (*models.Courier, error)
	GetAll() ([]models.Courier, error)
	Update(courier *models.Courier) error
	Delete(id uint) error
}

type courierRepository struct {
	db *gorm.DB
}

func NewCourierRepository(db *gorm.DB) CourierRepository {
	return &courierRepository{db: db}
}

func (r *courierRepository) Create(courier *models.Courier) error {
	return r.db.Create(courier).Error
}

func (r *courierRepository) GetByID(id uint) (*models.Courier, error) {
	var courier models.Courier
	err := r.db.First(&courier, id).Error
	if err != nil {
		return nil, err
	}
	return &courier, nil
}

func (r *courierRepository) GetAll() ([]models.Courier, error) {
	var couriers []models.Courier
	err := r.db.Order("name ASC").Find(&couriers).Error
	return couriers, err
}

func (r *courierRepository) Update(courier *models.Courier) error {
	return r.db.Save(courier).Error
}

func (r *courierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Courier{}, id).Error
}
