package models

import "time"

type Trip struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	Departure      string    `gorm:"size:100;index;not null" json:"departure"`
	Destination    string    `gorm:"size:100;index;not null" json:"destination"`
	DepartureTime  time.Time `gorm:"index;not null" json:"departure_time"`
	PricePerPerson float64   `gorm:"not null" json:"price_per_person"`
	AvailableSeats int       `gorm:"not null" json:"available_seats"`
	OwnerID        int       `gorm:"index;not null" json:"owner_id"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`

	// Resolved from Owner for API responses.
	OwnerName string `gorm:"-" json:"owner_name,omitempty"`
}

type Booking struct {
	ID       int       `gorm:"primaryKey" json:"id"`
	UserID   int       `gorm:"index;not null" json:"user_id"`
	TripID   int       `gorm:"index;not null" json:"trip_id"`
	BookedAt time.Time `gorm:"index;not null" json:"booked_at"`
	Status   string    `gorm:"size:20;index;not null;default:confirmed" json:"status"`

	Trip *Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)
