package checkins

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidMood     = errors.New("mood must be between 1 and 10")
	ErrInvalidEnergy   = errors.New("energy must be between 1 and 10")
	ErrInvalidSleep    = errors.New("sleep hours must be between 0 and 24")
	ErrInvalidDay      = errors.New("day must be formatted YYYY-MM-DD")
	ErrCheckInNotFound = errors.New("check-in not found")
)

type CheckInService struct {
	db *gorm.DB
}

func NewCheckInService(db *gorm.DB) *CheckInService {
	return &CheckInService{db: db}
}

// Upsert creates or replaces the check-in for the given day. A missing day
// means today (UTC).
func (s *CheckInService) Upsert(userID uuid.UUID, req UpsertCheckInRequest) (*CheckIn, error) {
	day := req.Day
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, ErrInvalidDay
	}

	if req.Mood < 1 || req.Mood > 10 {
		return nil, ErrInvalidMood
	}
	if req.Energy < 1 || req.Energy > 10 {
		return nil, ErrInvalidEnergy
	}
	if req.SleepHours < 0 || req.SleepHours > 24 {
		return nil, ErrInvalidSleep
	}
	if req.WaterGlasses < 0 {
		req.WaterGlasses = 0
	}

	var existing CheckIn
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&existing).Error
	if err == nil {
		existing.Mood = req.Mood
		existing.Energy = req.Energy
		existing.SleepHours = req.SleepHours
		existing.WaterGlasses = req.WaterGlasses
		existing.Note = req.Note
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	checkIn := CheckIn{
		ID:           uuid.New(),
		UserID:       userID,
		Day:          day,
		Mood:         req.Mood,
		Energy:       req.Energy,
		SleepHours:   req.SleepHours,
		WaterGlasses: req.WaterGlasses,
		Note:         req.Note,
	}
	if err := s.db.Create(&checkIn).Error; err != nil {
		return nil, err
	}

	_ = s.updateStreak(userID, day)

	return &checkIn, nil
}

func (s *CheckInService) List(userID uuid.UUID, limit, offset int) ([]CheckIn, int64, error) {
	var checkIns []CheckIn
	var total int64

	s.db.Model(&CheckIn{}).Where("user_id = ?", userID).Count(&total)

	err := s.db.Where("user_id = ?", userID).
		Order("day DESC").
		Limit(limit).
		Offset(offset).
		Find(&checkIns).Error

	return checkIns, total, err
}

func (s *CheckInService) GetByDay(userID uuid.UUID, day string) (*CheckIn, error) {
	var checkIn CheckIn
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&checkIn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCheckInNotFound
	}
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (s *CheckInService) Delete(userID, checkInID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, checkInID).Delete(&CheckIn{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCheckInNotFound
	}
	return nil
}

func (s *CheckInService) GetStreak(userID uuid.UUID) (*CheckInStreak, error) {
	var streak CheckInStreak
	err := s.db.Where("user_id = ?", userID).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = CheckInStreak{
			ID:     uuid.New(),
			UserID: userID,
		}
		if createErr := s.db.Create(&streak).Error; createErr != nil {
			return nil, createErr
		}
		return &streak, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (s *CheckInService) updateStreak(userID uuid.UUID, day string) error {
	streak, err := s.GetStreak(userID)
	if err != nil {
		return err
	}

	if day == streak.LastCheckInDay {
		return nil
	}

	today, err := time.Parse("2006-01-02", day)
	if err != nil {
		return err
	}
	yesterday := today.AddDate(0, 0, -1).Format("2006-01-02")

	if streak.LastCheckInDay == yesterday {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}

	streak.TotalCheckIns++
	streak.LastCheckInDay = day

	return s.db.Save(streak).Error
}
