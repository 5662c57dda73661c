package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusgo-backend/models"
)

func TestBookingCreate(t *testing.T) {
	e := newTestEnv(t)
	svc := NewBookingService(e.bookings, e.trips)

	owner := e.mustUser(t, "owner")
	rider := e.mustUser(t, "rider")
	trip := e.mustTrip(t, owner.ID, 2)

	booking, err := svc.Create(trip.ID, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, rider.ID, booking.UserID)

	updated, err := e.trips.FindByID(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.AvailableSeats)

	t.Run("duplicate booking rejected", func(t *testing.T) {
		_, err := svc.Create(trip.ID, rider.ID)
		assert.ErrorIs(t, err, ErrAlreadyBooked)
	})

	t.Run("missing trip", func(t *testing.T) {
		_, err := svc.Create(99999, rider.ID)
		assert.ErrorIs(t, err, ErrTripNotFound)
	})
}

func TestBookingCreateNoSeats(t *testing.T) {
	e := newTestEnv(t)
	svc := NewBookingService(e.bookings, e.trips)

	owner := e.mustUser(t, "owner")
	first := e.mustUser(t, "first")
	second := e.mustUser(t, "second")
	trip := e.mustTrip(t, owner.ID, 1)

	_, err := svc.Create(trip.ID, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(trip.ID, second.ID)
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestBookingCancelRestoresSeat(t *testing.T) {
	e := newTestEnv(t)
	svc := NewBookingService(e.bookings, e.trips)

	owner := e.mustUser(t, "owner")
	rider := e.mustUser(t, "rider")
	other := e.mustUser(t, "other")
	trip := e.mustTrip(t, owner.ID, 2)

	booking, err := svc.Create(trip.ID, rider.ID)
	require.NoError(t, err)
	_, err = svc.Create(trip.ID, other.ID)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(booking.ID, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	updated, err := e.trips.FindByID(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.AvailableSeats)

	t.Run("cancelled booking is gone", func(t *testing.T) {
		_, err := svc.Get(booking.ID, rider.ID)
		assert.ErrorIs(t, err, ErrBookingMissing)
	})

	t.Run("cannot cancel someone else's booking", func(t *testing.T) {
		bookings, err := svc.ListByUser(other.ID, 0, 10)
		require.NoError(t, err)
		require.Len(t, bookings, 1)

		_, err = svc.Cancel(bookings[0].ID, rider.ID)
		assert.ErrorIs(t, err, ErrBookingMissing)
	})
}

func TestBookingListByUser(t *testing.T) {
	e := newTestEnv(t)
	svc := NewBookingService(e.bookings, e.trips)

	owner := e.mustUser(t, "owner")
	rider := e.mustUser(t, "rider")
	t1 := e.mustTrip(t, owner.ID, 2)
	t2 := e.mustTrip(t, owner.ID, 2)

	_, err := svc.Create(t1.ID, rider.ID)
	require.NoError(t, err)
	_, err = svc.Create(t2.ID, rider.ID)
	require.NoError(t, err)

	bookings, err := svc.ListByUser(rider.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	require.NotNil(t, bookings[0].Trip)
	assert.Equal(t, "owner", bookings[0].Trip.OwnerName)
}
