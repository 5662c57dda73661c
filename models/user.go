package models

import "time"

type User struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	HashedPassword  string    `gorm:"size:100;not null" json:"-"`
	ReputationScore int       `gorm:"not null;default:100" json:"reputation_score"`
	CreatedAt       time.Time `gorm:"index;not null" json:"created_at"`
}
