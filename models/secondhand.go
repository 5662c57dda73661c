package models

import "time"

type SecondHandItem struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Category    string    `gorm:"size:50;index;not null" json:"category"`
	Condition   string    `gorm:"size:20;not null" json:"condition"`
	OwnerID     int       `gorm:"index;not null" json:"owner_id"`
	CreatedAt   time.Time `gorm:"index;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
	IsActive    bool      `gorm:"index;not null;default:true" json:"is_active"`

	OwnerName string `gorm:"-" json:"owner_name,omitempty"`
}
