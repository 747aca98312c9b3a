package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account principal owning all tracked health data.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	DisplayName  string     `gorm:"size:100" json:"display_name"`
	Role         string     `gorm:"size:20;default:'user'" json:"role"`
	TimeZone     string     `gorm:"size:64;default:'UTC'" json:"time_zone"`
	LastActiveAt *time.Time `json:"last_active_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
