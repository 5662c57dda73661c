package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusgo-backend/cache"
	"campusgo-backend/models"
	"campusgo-backend/repository"
	"campusgo-backend/services"
)

type bookingFixture struct {
	handler *BookingHandler
	cache   *cache.Cache
	users   repository.UserRepository
	trips   repository.TripRepository
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	db, err := repository.Open(":memory:")
	require.NoError(t, err)

	users := repository.NewGormUserRepo(db)
	trips := repository.NewGormTripRepo(db)
	bookings := repository.NewGormBookingRepo(db)

	c := cache.New(client, "test:")
	svc := services.NewBookingService(bookings, trips)
	return &bookingFixture{
		handler: NewBookingHandler(svc, c),
		cache:   c,
		users:   users,
		trips:   trips,
	}
}

func (f *bookingFixture) mustUser(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@campus.test", HashedPassword: "x"}
	require.NoError(t, f.users.Create(u))
	return u
}

func (f *bookingFixture) mustTrip(t *testing.T, ownerID int) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		Departure:      "North Gate",
		Destination:    "Station",
		DepartureTime:  time.Now().Add(24 * time.Hour),
		PricePerPerson: 10,
		AvailableSeats: 3,
		OwnerID:        ownerID,
	}
	require.NoError(t, f.trips.Create(trip))
	return trip
}

func asUser(r *http.Request, uid int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxUserID, uid))
}

func (f *bookingFixture) createBooking(t *testing.T, uid, tripID int) models.Booking {
	t.Helper()
	body, _ := json.Marshal(map[string]int{"trip_id": tripID})
	r := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body)), uid)
	w := httptest.NewRecorder()
	f.handler.Create(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func (f *bookingFixture) listMine(t *testing.T, uid int) []models.Booking {
	t.Helper()
	r := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine", nil), uid)
	w := httptest.NewRecorder()
	f.handler.Mine(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []models.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestBookingListCacheInvalidation(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.mustUser(t, "owner")
	rider := f.mustUser(t, "rider")
	first := f.mustTrip(t, owner.ID)
	second := f.mustTrip(t, owner.ID)

	booked := f.createBooking(t, rider.ID, first.ID)
	require.Len(t, f.listMine(t, rider.ID), 1)

	// the list is now cached; a second booking must not be hidden by it
	f.createBooking(t, rider.ID, second.ID)
	listed := f.listMine(t, rider.ID)
	require.Len(t, listed, 2)

	r := asUser(httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+strconv.Itoa(booked.ID), nil), rider.ID)
	r.SetPathValue("id", strconv.Itoa(booked.ID))
	w := httptest.NewRecorder()
	f.handler.Cancel(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	listed = f.listMine(t, rider.ID)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].TripID)
}

func TestBookingListCachesDefaultPageOnly(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.mustUser(t, "owner")
	rider := f.mustUser(t, "rider")
	trip := f.mustTrip(t, owner.ID)
	f.createBooking(t, rider.ID, trip.ID)

	r := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mine?limit=5", nil), rider.ID)
	w := httptest.NewRecorder()
	f.handler.Mine(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var cached []models.Booking
	assert.False(t, f.cache.Get(context.Background(), fmt.Sprintf("user_bookings_%d", rider.ID), &cached))

	f.listMine(t, rider.ID)
	assert.True(t, f.cache.Get(context.Background(), fmt.Sprintf("user_bookings_%d", rider.ID), &cached))
	assert.Len(t, cached, 1)
}
