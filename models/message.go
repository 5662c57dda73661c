package models

import "time"

// ChatMessage is append-only: rows are never mutated or deleted.
type ChatMessage struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	TripID      int       `gorm:"index;not null" json:"trip_id"`
	SenderID    int       `gorm:"index;not null" json:"sender_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	MessageType string    `gorm:"size:20;not null;default:text" json:"message_type"`
	Timestamp   time.Time `gorm:"index;not null" json:"timestamp"`

	// Resolved from the sender row for API responses and broadcast frames.
	SenderUsername string `gorm:"-" json:"sender_username"`
}

const MessageTypeText = "text"
