package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

type ReputationRepository interface {
	Create(record *models.ReputationRecord) error
	ListByUser(userID int) ([]models.ReputationRecord, error)
}

type GormReputationRepo struct {
	db *gorm.DB
}

func NewGormReputationRepo(db *gorm.DB) *GormReputationRepo {
	return &GormReputationRepo{db: db}
}

func (r *GormReputationRepo) Create(record *models.ReputationRecord) error {
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now().UTC()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create reputation record: %w", err)
	}
	return nil
}

func (r *GormReputationRepo) ListByUser(userID int) ([]models.ReputationRecord, error) {
	var records []models.ReputationRecord
	err := r.db.Where("user_id = ?", userID).Order("recorded_at desc").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reputation records: %w", err)
	}
	return records, nil
}
