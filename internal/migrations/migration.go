package migrations

import (
	"log"

	"backoffice/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds default data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.Courier{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.UserLog{},
		&models.Branding{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData seeds roles, the initial admin user and the branding row.
func createDefaultData(db *gorm.DB) error {
	for _, name := range []string{models.RoleAdmin, models.RoleStaff} {
		var role models.Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	var adminRole models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		log.Println("Creating default admin user...")
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &models.User{
			Username:     "admin",
			Email:        "admin@localhost",
			PasswordHash: string(hashed),
			RoleID:       adminRole.ID,
			IsActive:     true,
		}
		if err := db.Create(admin).Error; err != nil {
			return err
		}
		log.Println("Default admin user created (username: admin, password: admin123)")
	}

	var brandingCount int64
	if err := db.Model(&models.Branding{}).Count(&brandingCount).Error; err != nil {
		return err
	}
	if brandingCount == 0 {
		if err := db.Create(&models.Branding{CompanyName: "Back Office"}).Error; err != nil {
			return err
		}
	}

	return nil
}
