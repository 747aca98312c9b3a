package checkins

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is one day's wellness snapshot. One row per user per calendar day.
type CheckIn struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_checkins_user_day" json:"user_id"`
	Day          string    `gorm:"size:10;not null;uniqueIndex:idx_checkins_user_day" json:"day"`
	Mood         int       `gorm:"default:5" json:"mood"`
	Energy       int       `gorm:"default:5" json:"energy"`
	SleepHours   float64   `json:"sleep_hours"`
	WaterGlasses int       `json:"water_glasses"`
	Note         string    `gorm:"type:text" json:"note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CheckInStreak struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	CurrentStreak  int       `gorm:"default:0" json:"current_streak"`
	LongestStreak  int       `gorm:"default:0" json:"longest_streak"`
	TotalCheckIns  int       `gorm:"default:0" json:"total_check_ins"`
	LastCheckInDay string    `gorm:"size:10" json:"last_check_in_day"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- DTOs ---

type UpsertCheckInRequest struct {
	Day          string  `json:"day"`
	Mood         int     `json:"mood"`
	Energy       int     `json:"energy"`
	SleepHours   float64 `json:"sleep_hours"`
	WaterGlasses int     `json:"water_glasses"`
	Note         string  `json:"note"`
}

type CheckInListResponse struct {
	CheckIns []CheckIn `json:"check_ins"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
