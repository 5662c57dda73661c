package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByIDForUser(id, userID int) (*models.Booking, error)
	FindByTripAndUser(tripID, userID int) (*models.Booking, error)
	ExistsConfirmed(tripID, userID int) (bool, error)
	ListByUser(userID, offset, limit int) ([]models.Booking, error)
	List(offset, limit int) ([]models.Booking, error)
	CountByTrip(tripID int) (int64, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountBookedBetween(from, to time.Time) (int64, error)
	CountActiveUsers(since time.Time) (int64, error)
	CountByDay(since time.Time) ([]DayCount, error)
	Delete(id int) error
}

type GormBookingRepo struct {
	db *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) *GormBookingRepo {
	return &GormBookingRepo{db: db}
}

func (r *GormBookingRepo) Create(booking *models.Booking) error {
	if booking.BookedAt.IsZero() {
		booking.BookedAt = time.Now().UTC()
	}
	if booking.Status == "" {
		booking.Status = models.BookingConfirmed
	}
	if err := r.db.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *GormBookingRepo) FindByIDForUser(id, userID int) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Trip").Preload("Trip.Owner").
		Where("id = ? AND user_id = ?", id, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *GormBookingRepo) FindByTripAndUser(tripID, userID int) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

// ExistsConfirmed reports whether the user holds a confirmed booking on the trip.
// Used by the chat room access policy.
func (r *GormBookingRepo) ExistsConfirmed(tripID, userID int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("trip_id = ? AND user_id = ? AND status = ?", tripID, userID, models.BookingConfirmed).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking: %w", err)
	}
	return count > 0, nil
}

func (r *GormBookingRepo) ListByUser(userID, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Trip").Preload("Trip.Owner").
		Where("user_id = ?", userID).
		Offset(offset).Limit(limit).Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *GormBookingRepo) List(offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Trip").Offset(offset).Limit(limit).Order("id").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *GormBookingRepo) CountByTrip(tripID int) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).Where("trip_id = ?", tripID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *GormBookingRepo) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *GormBookingRepo) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *GormBookingRepo) CountBookedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("booked_at >= ? AND booked_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *GormBookingRepo) CountActiveUsers(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("booked_at >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

func (r *GormBookingRepo) CountByDay(since time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.Model(&models.Booking{}).
		Select("date(booked_at) as day, count(*) as count").
		Where("booked_at >= ?", since).
		Group("day").Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by day: %w", err)
	}
	return rows, nil
}

func (r *GormBookingRepo) Delete(id int) error {
	result := r.db.Delete(&models.Booking{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
