package services

import (
	"errors"

	"campusgo-backend/models"
	"campusgo-backend/repository"
)

var (
	ErrNoSeats        = errors.New("no available seats on this trip")
	ErrAlreadyBooked  = errors.New("trip already booked by this user")
	ErrBookingMissing = errors.New("booking not found")
)

type BookingService struct {
	bookings repository.BookingRepository
	trips    repository.TripRepository
}

func NewBookingService(br repository.BookingRepository, tr repository.TripRepository) *BookingService {
	return &BookingService{bookings: br, trips: tr}
}

func (s *BookingService) Create(tripID, userID int) (*models.Booking, error) {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.AvailableSeats <= 0 {
		return nil, ErrNoSeats
	}
	if _, err := s.bookings.FindByTripAndUser(tripID, userID); err == nil {
		return nil, ErrAlreadyBooked
	}

	booking := &models.Booking{
		TripID: tripID,
		UserID: userID,
		Status: models.BookingConfirmed,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}
	if err := s.trips.SetAvailableSeats(tripID, trip.AvailableSeats-1); err != nil {
		return nil, err
	}
	return s.Get(booking.ID, userID)
}

func (s *BookingService) Get(id, userID int) (*models.Booking, error) {
	booking, err := s.bookings.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingMissing
		}
		return nil, err
	}
	if booking.Trip != nil {
		resolveOwnerName(booking.Trip)
	}
	return booking, nil
}

func (s *BookingService) ListByUser(userID, skip, limit int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	bookings, err := s.bookings.ListByUser(userID, skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].Trip != nil {
			resolveOwnerName(bookings[i].Trip)
		}
	}
	return bookings, nil
}

// Cancel deletes the booking and restores the seat. A trip left with no
// bookings after its owner cancelled their own seat is removed entirely.
func (s *BookingService) Cancel(id, userID int) (*models.Booking, error) {
	booking, err := s.bookings.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingMissing
		}
		return nil, err
	}

	if err := s.bookings.Delete(booking.ID); err != nil {
		return nil, err
	}

	trip := booking.Trip
	if trip != nil {
		if err := s.trips.SetAvailableSeats(trip.ID, trip.AvailableSeats+1); err != nil {
			return nil, err
		}
		remaining, err := s.bookings.CountByTrip(trip.ID)
		if err == nil && remaining == 0 && trip.OwnerID == userID {
			_ = s.trips.Delete(trip.ID)
		}
		resolveOwnerName(trip)
	}

	booking.Status = models.BookingCancelled
	return booking, nil
}
