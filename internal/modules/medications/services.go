package medications

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNameRequired       = errors.New("medication name is required")
	ErrMedicationNotFound = errors.New("medication not found")
	ErrDoseNotFound       = errors.New("dose log not found")
	ErrInvalidTakenAt     = errors.New("taken_at must be RFC 3339 formatted")
)

type MedicationService struct {
	db *gorm.DB
}

func NewMedicationService(db *gorm.DB) *MedicationService {
	return &MedicationService{db: db}
}

func (s *MedicationService) Create(userID uuid.UUID, req CreateMedicationRequest) (*Medication, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	med := Medication{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Dosage:   req.Dosage,
		Unit:     req.Unit,
		Schedule: req.Schedule,
		Notes:    req.Notes,
		Active:   true,
	}
	if err := s.db.Create(&med).Error; err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *MedicationService) List(userID uuid.UUID, includeInactive bool) ([]Medication, error) {
	var meds []Medication
	q := s.db.Where("user_id = ?", userID)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&meds).Error
	return meds, err
}

func (s *MedicationService) Get(userID, medID uuid.UUID) (*Medication, error) {
	var med Medication
	err := s.db.Where("user_id = ? AND id = ?", userID, medID).First(&med).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMedicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *MedicationService) Update(userID, medID uuid.UUID, req UpdateMedicationRequest) (*Medication, error) {
	med, err := s.Get(userID, medID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		med.Name = strings.TrimSpace(*req.Name)
	}
	if req.Dosage != nil {
		med.Dosage = *req.Dosage
	}
	if req.Unit != nil {
		med.Unit = *req.Unit
	}
	if req.Schedule != nil {
		med.Schedule = *req.Schedule
	}
	if req.Notes != nil {
		med.Notes = *req.Notes
	}
	if req.Active != nil {
		med.Active = *req.Active
	}

	if err := s.db.Save(med).Error; err != nil {
		return nil, err
	}
	return med, nil
}

// Delete soft-deletes the medication; its dose history stays queryable.
func (s *MedicationService) Delete(userID, medID uuid.UUID) error {
	med, err := s.Get(userID, medID)
	if err != nil {
		return err
	}
	return s.db.Delete(med).Error
}

func (s *MedicationService) LogDose(userID uuid.UUID, req LogDoseRequest) (*DoseLog, error) {
	if _, err := s.Get(userID, req.MedicationID); err != nil {
		return nil, err
	}

	takenAt := time.Now().UTC()
	if req.TakenAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.TakenAt)
		if err != nil {
			return nil, ErrInvalidTakenAt
		}
		takenAt = parsed.UTC()
	}

	dose := DoseLog{
		ID:           uuid.New(),
		UserID:       userID,
		MedicationID: req.MedicationID,
		TakenAt:      takenAt,
		Skipped:      req.Skipped,
		Note:         req.Note,
	}
	if err := s.db.Create(&dose).Error; err != nil {
		return nil, err
	}
	return &dose, nil
}

func (s *MedicationService) ListDoses(userID uuid.UUID, medicationID *uuid.UUID, limit, offset int) ([]DoseLog, int64, error) {
	var doses []DoseLog
	var total int64

	q := s.db.Model(&DoseLog{}).Where("user_id = ?", userID)
	if medicationID != nil {
		q = q.Where("medication_id = ?", *medicationID)
	}
	q.Count(&total)

	err := q.Order("taken_at DESC").Limit(limit).Offset(offset).Find(&doses).Error
	return doses, total, err
}

func (s *MedicationService) DeleteDose(userID, doseID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, doseID).Delete(&DoseLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoseNotFound
	}
	return nil
}

// TodaySummary counts doses taken and skipped since midnight UTC.
func (s *MedicationService) TodaySummary(userID uuid.UUID) (*TodaySummary, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var taken, skipped int64
	if err := s.db.Model(&DoseLog{}).
		Where("user_id = ? AND taken_at >= ? AND skipped = false", userID, startOfDay).
		Count(&taken).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&DoseLog{}).
		Where("user_id = ? AND taken_at >= ? AND skipped = true", userID, startOfDay).
		Count(&skipped).Error; err != nil {
		return nil, err
	}

	return &TodaySummary{Taken: int(taken), Skipped: int(skipped)}, nil
}
