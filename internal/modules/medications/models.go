package medications

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Medication struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	Dosage    float64        `json:"dosage"`
	Unit      string         `gorm:"size:20" json:"unit"`
	Schedule  string         `gorm:"size:100" json:"schedule"`
	Notes     string         `gorm:"type:text" json:"notes"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DoseLog records one taken or skipped dose. Kept when the medication is
// archived so history survives.
type DoseLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	MedicationID uuid.UUID `gorm:"type:uuid;index" json:"medication_id"`
	TakenAt      time.Time `gorm:"index" json:"taken_at"`
	Skipped      bool      `gorm:"default:false" json:"skipped"`
	Note         string    `gorm:"type:text" json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- DTOs ---

type CreateMedicationRequest struct {
	Name     string  `json:"name"`
	Dosage   float64 `json:"dosage"`
	Unit     string  `json:"unit"`
	Schedule string  `json:"schedule"`
	Notes    string  `json:"notes"`
}

type UpdateMedicationRequest struct {
	Name     *string  `json:"name"`
	Dosage   *float64 `json:"dosage"`
	Unit     *string  `json:"unit"`
	Schedule *string  `json:"schedule"`
	Notes    *string  `json:"notes"`
	Active   *bool    `json:"active"`
}

type LogDoseRequest struct {
	MedicationID uuid.UUID `json:"medication_id"`
	TakenAt      string    `json:"taken_at"`
	Skipped      bool      `json:"skipped"`
	Note         string    `json:"note"`
}

type DoseListResponse struct {
	Doses  []DoseLog `json:"doses"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type TodaySummary struct {
	Taken   int `json:"taken"`
	Skipped int `json:"skipped"`
}
