package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campusgo-backend/models"
)

func newAdminService(e *testEnv) *AdminService {
	return NewAdminService(e.admins, e.users, e.trips, e.bookings, e.items, e.errands, &e.cfg)
}

func (e *testEnv) mustAdmin(t *testing.T, username, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	a := &models.Admin{
		Username:     username,
		Email:        username + "@campus.test",
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}
	require.NoError(t, e.admins.Create(a))
	return a
}

func TestAdminLogin(t *testing.T) {
	e := newTestEnv(t)
	svc := newAdminService(e)
	e.mustAdmin(t, "root", "admin-pass-1")

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login("root", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown admin", func(t *testing.T) {
		_, _, err := svc.Login("ghost", "admin-pass-1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	token, admin, err := svc.Login("root", "admin-pass-1")
	require.NoError(t, err)
	require.NotNil(t, admin.LastLogin)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)

	t.Run("user tokens rejected", func(t *testing.T) {
		authSvc := newAuthService(e)
		_, err := authSvc.Register("alice", "alice@campus.test", "password1")
		require.NoError(t, err)
		pair, _, err := authSvc.Login("alice", "password1")
		require.NoError(t, err)

		_, err = svc.ParseToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestEnsureDefaultAdmin(t *testing.T) {
	e := newTestEnv(t)
	svc := newAdminService(e)

	created, err := svc.EnsureDefaultAdmin()
	require.NoError(t, err)
	assert.True(t, created)

	seeded, err := e.admins.FindByUsername(e.cfg.AdminUsername)
	require.NoError(t, err)
	assert.True(t, seeded.IsActive)

	t.Run("second run is a no-op", func(t *testing.T) {
		created, err := svc.EnsureDefaultAdmin()
		require.NoError(t, err)
		assert.False(t, created)

		again, err := e.admins.FindByUsername(e.cfg.AdminUsername)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, again.ID)
	})

	t.Run("seeded credentials can log in", func(t *testing.T) {
		_, admin, err := svc.Login(e.cfg.AdminUsername, e.cfg.AdminPassword)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, admin.ID)
	})
}

func TestAdminOverview(t *testing.T) {
	e := newTestEnv(t)
	svc := newAdminService(e)

	owner := e.mustUser(t, "owner")
	rider := e.mustUser(t, "rider")
	trip := e.mustTrip(t, owner.ID, 3)
	e.mustBooking(t, trip.ID, rider.ID)
	cancelled := &models.Booking{TripID: trip.ID, UserID: owner.ID, Status: models.BookingCancelled}
	require.NoError(t, e.bookings.Create(cancelled))

	stats, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalTrips)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, 50.0, stats.ConfirmationRate)
	assert.Equal(t, 50.0, stats.CancellationRate)
	assert.Equal(t, int64(2), stats.ActiveUsers30d)
	assert.Equal(t, int64(2), stats.BookingsToday)
}

func TestAdminTrendsZeroFilled(t *testing.T) {
	e := newTestEnv(t)
	svc := newAdminService(e)

	owner := e.mustUser(t, "owner")
	rider := e.mustUser(t, "rider")
	trip := e.mustTrip(t, owner.ID, 3)
	e.mustBooking(t, trip.ID, rider.ID)

	trends, err := svc.BookingTrends(7)
	require.NoError(t, err)
	require.Len(t, trends, 7)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, trends[6].Day)
	assert.Equal(t, 1, trends[6].Count)
	for _, bucket := range trends[:6] {
		assert.Equal(t, 0, bucket.Count)
	}

	growth, err := svc.UserGrowth(7)
	require.NoError(t, err)
	require.Len(t, growth, 7)
	assert.Equal(t, 2, growth[6].Count)
}
