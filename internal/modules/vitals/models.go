package vitals

import (
	"time"

	"github.com/google/uuid"
)

// Reading types. Blood pressure stores systolic in Value and diastolic in
// Value2; every other type uses Value alone.
const (
	TypeWeight        = "weight_kg"
	TypeBloodPressure = "blood_pressure"
	TypeHeartRate     = "heart_rate_bpm"
	TypeGlucose       = "glucose_mmol"
)

type VitalReading struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Type       string    `gorm:"size:30;index;not null" json:"type"`
	Value      float64   `json:"value"`
	Value2     float64   `json:"value2,omitempty"`
	Note       string    `gorm:"type:text" json:"note"`
	RecordedAt time.Time `gorm:"index" json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// --- DTOs ---

type RecordReadingRequest struct {
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Value2     float64 `json:"value2"`
	Note       string  `json:"note"`
	RecordedAt string  `json:"recorded_at"`
}

type ReadingListResponse struct {
	Readings []VitalReading `json:"readings"`
	Total    int64          `json:"total"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
}
