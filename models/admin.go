package models

import "time"

type Admin struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         string     `gorm:"size:20;not null;default:admin" json:"role"`
	CreatedAt    time.Time  `gorm:"index;not null" json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
}
