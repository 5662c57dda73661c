package services

import (
	"errors"
	"time"

	"campusgo-backend/models"
	"campusgo-backend/repository"
)

// TripPage is a paginated trip listing.
type TripPage struct {
	Items      []models.Trip `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Limit      int           `json:"limit"`
}

type TripService struct {
	trips repository.TripRepository
}

func NewTripService(tr repository.TripRepository) *TripService {
	return &TripService{trips: tr}
}

func (s *TripService) Create(ownerID int, departure, destination string, departureTime time.Time, price float64, seats int) (*models.Trip, error) {
	if departure == "" || destination == "" {
		return nil, errors.New("departure and destination are required")
	}
	if price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if seats <= 0 {
		return nil, errors.New("available seats must be positive")
	}

	trip := &models.Trip{
		Departure:      departure,
		Destination:    destination,
		DepartureTime:  departureTime,
		PricePerPerson: price,
		AvailableSeats: seats,
		OwnerID:        ownerID,
	}
	if err := s.trips.Create(trip); err != nil {
		return nil, err
	}
	return s.Get(trip.ID)
}

func (s *TripService) Get(id int) (*models.Trip, error) {
	trip, err := s.trips.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	resolveOwnerName(trip)
	return trip, nil
}

func (s *TripService) ListByOwner(ownerID int) ([]models.Trip, error) {
	trips, err := s.trips.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		resolveOwnerName(&trips[i])
	}
	return trips, nil
}

func (s *TripService) ListAll(skip, limit int) (*TripPage, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	total, err := s.trips.Count()
	if err != nil {
		return nil, err
	}
	trips, err := s.trips.List(skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		resolveOwnerName(&trips[i])
	}

	return &TripPage{
		Items:      trips,
		Total:      total,
		Page:       skip/limit + 1,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Limit:      limit,
	}, nil
}

func resolveOwnerName(trip *models.Trip) {
	if trip.Owner != nil {
		trip.OwnerName = trip.Owner.Username
	}
}
