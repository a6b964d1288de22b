package repository

import (
	"backoffice/internal/models"

	"gorm.io/gorm"
)

// BrandingRepository manages the single branding configuration row.
type BrandingRepository interface {
	Get() (*models.Branding, error)
	Save(branding *models.Branding) error
}

type brandingRepository struct {
	db *gorm.DB
}

func NewBrandingRepository(db *gorm.DB) BrandingRepository {
	return &brandingRepository{db: db}
}

func (r *brandingRepository) Get() (*models.Branding, error) {
	var branding models.Branding
	err := r.db.First(&branding).Error
	if err != nil {
		return nil, err
	}
	return &branding, nil
}

func (r *brandingRepository) Save(branding *models.Branding) error {
	return r.db.Save(branding).Error
}
