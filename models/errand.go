package models

import "time"

type ErrandTask struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Reward      float64   `gorm:"not null" json:"reward"`
	Location    string    `gorm:"size:100;not null" json:"location"`
	Deadline    time.Time `gorm:"index;not null" json:"deadline"`
	OwnerID     int       `gorm:"index;not null" json:"owner_id"`
	AssigneeID  *int      `gorm:"index" json:"assignee_id"`
	CreatedAt   time.Time `gorm:"index;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
	Status      string    `gorm:"size:20;index;not null;default:open" json:"status"`

	OwnerName    string `gorm:"-" json:"owner_name,omitempty"`
	AssigneeName string `gorm:"-" json:"assignee_name,omitempty"`
}

const (
	ErrandOpen       = "open"
	ErrandInProgress = "in_progress"
	ErrandCompleted  = "completed"
	ErrandCancelled  = "cancelled"
)

type ErrandResponse struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	TaskID     int       `gorm:"index;not null" json:"task_id"`
	UserID     int       `gorm:"index;not null" json:"user_id"`
	Message    string    `gorm:"type:text" json:"message"`
	CreatedAt  time.Time `gorm:"index;not null" json:"created_at"`
	IsAccepted bool      `gorm:"index;not null;default:false" json:"is_accepted"`

	UserName string `gorm:"-" json:"user_name,omitempty"`
}
