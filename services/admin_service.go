package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campusgo-backend/config"
	"campusgo-backend/models"
	"campusgo-backend/repository"
	"campusgo-backend/utils"
)

var ErrAdminDisabled = errors.New("admin account is disabled")

// StatsOverview is the aggregate dashboard snapshot.
type StatsOverview struct {
	TotalUsers       int64   `json:"total_users"`
	TotalTrips       int64   `json:"total_trips"`
	TotalBookings    int64   `json:"total_bookings"`
	TotalItems       int64   `json:"total_secondhand_items"`
	OpenErrands      int64   `json:"open_errand_tasks"`
	ConfirmationRate float64 `json:"confirmation_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	ActiveUsers30d   int64   `json:"active_users_30d"`
	BookingsToday    int64   `json:"bookings_today"`
	BookingsWeek     int64   `json:"bookings_this_week"`
	BookingsMonth    int64   `json:"bookings_this_month"`
	TripsWeek        int64   `json:"trips_departing_this_week"`
}

type AdminService struct {
	admins   repository.AdminRepository
	users    repository.UserRepository
	trips    repository.TripRepository
	bookings repository.BookingRepository
	items    repository.SecondHandRepository
	errands  repository.ErrandRepository
	config   *config.Config
}

func NewAdminService(
	ar repository.AdminRepository,
	ur repository.UserRepository,
	tr repository.TripRepository,
	br repository.BookingRepository,
	sr repository.SecondHandRepository,
	er repository.ErrandRepository,
	cfg *config.Config,
) *AdminService {
	return &AdminService{
		admins:   ar,
		users:    ur,
		trips:    tr,
		bookings: br,
		items:    sr,
		errands:  er,
		config:   cfg,
	}
}

// EnsureDefaultAdmin seeds the configured admin account on first start so the
// console is reachable on a fresh database. Returns true when the account was
// created, false when it already existed.
func (s *AdminService) EnsureDefaultAdmin() (bool, error) {
	_, err := s.admins.FindByUsername(s.config.AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &models.Admin{
		Username:     s.config.AdminUsername,
		Email:        s.config.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}
	if err := s.admins.Create(admin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AdminService) Login(username, password string) (string, *models.Admin, error) {
	admin, err := s.admins.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !admin.IsActive {
		return "", nil, ErrAdminDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(
		s.config.AdminJWTSecret,
		admin.ID,
		admin.Username,
		utils.TokenTypeAccess,
		time.Duration(s.config.AdminJWTExpiryMins)*time.Minute,
	)
	if err != nil {
		return "", nil, err
	}

	if err := s.admins.TouchLastLogin(admin.ID); err != nil {
		return "", nil, err
	}
	now := time.Now().UTC()
	admin.LastLogin = &now
	return token, admin, nil
}

// ParseToken validates a token signed with the admin secret.
func (s *AdminService) ParseToken(tokenStr string) (utils.Claims, error) {
	return utils.ParseJWT(s.config.AdminJWTSecret, tokenStr, utils.TokenTypeAccess)
}

func (s *AdminService) Get(id int) (*models.Admin, error) {
	admin, err := s.admins.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ListUsers(skip, limit int) ([]models.User, error) {
	return s.users.List(skip, clampLimit(limit))
}

func (s *AdminService) ListTrips(skip, limit int) ([]models.Trip, error) {
	return s.trips.List(skip, clampLimit(limit))
}

func (s *AdminService) ListBookings(skip, limit int) ([]models.Booking, error) {
	return s.bookings.List(skip, clampLimit(limit))
}

func (s *AdminService) ListItems(skip, limit int) ([]models.SecondHandItem, error) {
	return s.items.ListAll(skip, clampLimit(limit))
}

func (s *AdminService) ListErrands(skip, limit int) ([]models.ErrandTask, error) {
	return s.errands.ListAllTasks(skip, clampLimit(limit))
}

func (s *AdminService) Overview() (*StatsOverview, error) {
	out := &StatsOverview{}

	var err error
	if out.TotalUsers, err = s.users.Count(); err != nil {
		return nil, err
	}
	if out.TotalTrips, err = s.trips.Count(); err != nil {
		return nil, err
	}
	if out.TotalBookings, err = s.bookings.Count(); err != nil {
		return nil, err
	}
	if out.TotalItems, err = s.items.CountActive(); err != nil {
		return nil, err
	}
	if out.OpenErrands, err = s.errands.CountOpenTasks(); err != nil {
		return nil, err
	}

	confirmed, err := s.bookings.CountByStatus(models.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.bookings.CountByStatus(models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if out.TotalBookings > 0 {
		out.ConfirmationRate = round2(float64(confirmed) / float64(out.TotalBookings) * 100)
		out.CancellationRate = round2(float64(cancelled) / float64(out.TotalBookings) * 100)
	}

	now := time.Now().UTC()
	if out.ActiveUsers30d, err = s.bookings.CountActiveUsers(now.AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if out.BookingsToday, err = s.bookings.CountBookedBetween(dayStart, now); err != nil {
		return nil, err
	}
	if out.BookingsWeek, err = s.bookings.CountBookedBetween(now.AddDate(0, 0, -7), now); err != nil {
		return nil, err
	}
	if out.BookingsMonth, err = s.bookings.CountBookedBetween(now.AddDate(0, -1, 0), now); err != nil {
		return nil, err
	}
	if out.TripsWeek, err = s.trips.CountDepartingBetween(now, now.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}

	return out, nil
}

// BookingTrends returns one bucket per day over the window, zero-filled so the
// chart has a point for every day even when nothing was booked.
func (s *AdminService) BookingTrends(days int) ([]repository.DayCount, error) {
	days = clampDays(days)
	since := dayFloor(time.Now().UTC().AddDate(0, 0, -(days - 1)))
	counts, err := s.bookings.CountByDay(since)
	if err != nil {
		return nil, err
	}
	return fillDays(since, days, counts), nil
}

func (s *AdminService) UserGrowth(days int) ([]repository.DayCount, error) {
	days = clampDays(days)
	since := dayFloor(time.Now().UTC().AddDate(0, 0, -(days - 1)))
	counts, err := s.users.CountByDay(since)
	if err != nil {
		return nil, err
	}
	return fillDays(since, days, counts), nil
}

func fillDays(since time.Time, days int, counts []repository.DayCount) []repository.DayCount {
	byDay := make(map[string]int, len(counts))
	for _, c := range counts {
		byDay[c.Day] = c.Count
	}
	out := make([]repository.DayCount, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, repository.DayCount{Day: day, Count: byDay[day]})
	}
	return out
}

func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clampDays(days int) int {
	if days <= 0 {
		return 30
	}
	if days > 365 {
		return 365
	}
	return days
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
