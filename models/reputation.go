package models

import "time"

// ReputationRecord stores one score change; positive adds, negative deducts.
type ReputationRecord struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"index;not null" json:"user_id"`
	ScoreChange int       `gorm:"not null" json:"score_change"`
	Reason      string    `gorm:"size:200;not null" json:"reason"`
	RecordedAt  time.Time `gorm:"index;not null" json:"recorded_at"`
}
