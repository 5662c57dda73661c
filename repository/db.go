package repository

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campusgo-backend/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
var ErrDuplicate = errors.New("already exists")

// Open connects to the SQLite database and runs migrations.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Booking{},
		&models.ReputationRecord{},
		&models.ChatMessage{},
		&models.SecondHandItem{},
		&models.ErrandTask{},
		&models.ErrandResponse{},
		&models.Admin{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// DayCount is one bucket of a day-grouped aggregate query.
type DayCount struct {
	Day   string `json:"date"`
	Count int    `json:"count"`
}
