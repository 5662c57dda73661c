package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

type AdminRepository interface {
	Create(admin *models.Admin) error
	FindByID(id int) (*models.Admin, error)
	FindByUsername(username string) (*models.Admin, error)
	TouchLastLogin(id int) error
}

type GormAdminRepo struct {
	db *gorm.DB
}

func NewGormAdminRepo(db *gorm.DB) *GormAdminRepo {
	return &GormAdminRepo{db: db}
}

func (r *GormAdminRepo) Create(admin *models.Admin) error {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	if admin.Role == "" {
		admin.Role = "admin"
	}
	admin.IsActive = true
	if err := r.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *GormAdminRepo) FindByID(id int) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (r *GormAdminRepo) FindByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &admin, nil
}

func (r *GormAdminRepo) TouchLastLogin(id int) error {
	now := time.Now().UTC()
	result := r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login", now)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
