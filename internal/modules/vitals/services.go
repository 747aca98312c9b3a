package vitals

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidType       = errors.New("unknown reading type")
	ErrInvalidValue      = errors.New("reading value must be positive")
	ErrMissingDiastolic  = errors.New("blood pressure requires both systolic and diastolic values")
	ErrInvalidRecordedAt = errors.New("recorded_at must be RFC 3339 formatted")
	ErrReadingNotFound   = errors.New("reading not found")
)

var validTypes = map[string]bool{
	TypeWeight:        true,
	TypeBloodPressure: true,
	TypeHeartRate:     true,
	TypeGlucose:       true,
}

type VitalService struct {
	db *gorm.DB
}

func NewVitalService(db *gorm.DB) *VitalService {
	return &VitalService{db: db}
}

func (s *VitalService) Record(userID uuid.UUID, req RecordReadingRequest) (*VitalReading, error) {
	if !validTypes[req.Type] {
		return nil, ErrInvalidType
	}
	if req.Value <= 0 {
		return nil, ErrInvalidValue
	}
	if req.Type == TypeBloodPressure && req.Value2 <= 0 {
		return nil, ErrMissingDiastolic
	}
	if req.Type != TypeBloodPressure {
		req.Value2 = 0
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			return nil, ErrInvalidRecordedAt
		}
		recordedAt = parsed.UTC()
	}

	reading := VitalReading{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       req.Type,
		Value:      req.Value,
		Value2:     req.Value2,
		Note:       req.Note,
		RecordedAt: recordedAt,
	}
	if err := s.db.Create(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

func (s *VitalService) List(userID uuid.UUID, readingType string, limit, offset int) ([]VitalReading, int64, error) {
	if readingType != "" && !validTypes[readingType] {
		return nil, 0, ErrInvalidType
	}

	var readings []VitalReading
	var total int64

	q := s.db.Model(&VitalReading{}).Where("user_id = ?", userID)
	if readingType != "" {
		q = q.Where("type = ?", readingType)
	}
	q.Count(&total)

	err := q.Order("recorded_at DESC").Limit(limit).Offset(offset).Find(&readings).Error
	return readings, total, err
}

// Latest returns the most recent reading of each type the user has recorded.
func (s *VitalService) Latest(userID uuid.UUID) (map[string]VitalReading, error) {
	latest := make(map[string]VitalReading)
	for t := range validTypes {
		var reading VitalReading
		err := s.db.Where("user_id = ? AND type = ?", userID, t).
			Order("recorded_at DESC").
			First(&reading).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		latest[t] = reading
	}
	return latest, nil
}

func (s *VitalService) Delete(userID, readingID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, readingID).Delete(&VitalReading{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReadingNotFound
	}
	return nil
}
