package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

type TripRepository interface {
	Create(trip *models.Trip) error
	FindByID(id int) (*models.Trip, error)
	ListByOwner(ownerID int) ([]models.Trip, error)
	List(offset, limit int) ([]models.Trip, error)
	Count() (int64, error)
	CountDepartingBetween(from, to time.Time) (int64, error)
	SetAvailableSeats(tripID, seats int) error
	Delete(id int) error
}

type GormTripRepo struct {
	db *gorm.DB
}

func NewGormTripRepo(db *gorm.DB) *GormTripRepo {
	return &GormTripRepo{db: db}
}

func (r *GormTripRepo) Create(trip *models.Trip) error {
	if err := r.db.Create(trip).Error; err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *GormTripRepo) FindByID(id int) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.Preload("Owner").First(&trip, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return &trip, nil
}

func (r *GormTripRepo) ListByOwner(ownerID int) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.Preload("Owner").Where("owner_id = ?", ownerID).Order("id").Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

func (r *GormTripRepo) List(offset, limit int) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.Preload("Owner").Offset(offset).Limit(limit).Order("id").Find(&trips).Error; err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, nil
}

func (r *GormTripRepo) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Trip{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return count, nil
}

func (r *GormTripRepo) CountDepartingBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Trip{}).
		Where("departure_time >= ? AND departure_time < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return count, nil
}

func (r *GormTripRepo) SetAvailableSeats(tripID, seats int) error {
	result := r.db.Model(&models.Trip{}).Where("id = ?", tripID).Update("available_seats", seats)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update seats: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormTripRepo) Delete(id int) error {
	result := r.db.Delete(&models.Trip{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
