package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusgo-backend/config"
	"campusgo-backend/models"
	"campusgo-backend/repository"
)

type testEnv struct {
	cfg      config.Config
	users    repository.UserRepository
	trips    repository.TripRepository
	bookings repository.BookingRepository
	messages repository.MessageRepository
	records  repository.ReputationRepository
	items    repository.SecondHandRepository
	errands  repository.ErrandRepository
	admins   repository.AdminRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.Open(":memory:")
	require.NoError(t, err)

	return &testEnv{
		cfg:      config.Load(),
		users:    repository.NewGormUserRepo(db),
		trips:    repository.NewGormTripRepo(db),
		bookings: repository.NewGormBookingRepo(db),
		messages: repository.NewGormMessageRepo(db),
		records:  repository.NewGormReputationRepo(db),
		items:    repository.NewGormSecondHandRepo(db),
		errands:  repository.NewGormErrandRepo(db),
		admins:   repository.NewGormAdminRepo(db),
	}
}

func (e *testEnv) mustUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:        username,
		Email:           username + "@campus.test",
		HashedPassword:  "x",
		ReputationScore: 100,
	}
	require.NoError(t, e.users.Create(u))
	return u
}

func (e *testEnv) mustTrip(t *testing.T, ownerID, seats int) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		Departure:      "North Campus",
		Destination:    "Airport",
		DepartureTime:  time.Now().Add(24 * time.Hour),
		PricePerPerson: 12.5,
		AvailableSeats: seats,
		OwnerID:        ownerID,
	}
	require.NoError(t, e.trips.Create(trip))
	return trip
}

func (e *testEnv) mustBooking(t *testing.T, tripID, userID int) *models.Booking {
	t.Helper()
	b := &models.Booking{TripID: tripID, UserID: userID, Status: models.BookingConfirmed}
	require.NoError(t, e.bookings.Create(b))
	return b
}
