package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

type MessageRepository interface {
	Save(msg *models.ChatMessage) error
	ListByTrip(tripID, offset, limit int) ([]models.ChatMessage, error)
}

type GormMessageRepo struct {
	db *gorm.DB
}

func NewGormMessageRepo(db *gorm.DB) *GormMessageRepo {
	return &GormMessageRepo{db: db}
}

func (r *GormMessageRepo) Save(msg *models.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if msg.MessageType == "" {
		msg.MessageType = models.MessageTypeText
	}
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// ListByTrip returns messages oldest first.
func (r *GormMessageRepo) ListByTrip(tripID, offset, limit int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.Where("trip_id = ?", tripID).
		Order("timestamp asc, id asc").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}
