package nutrition

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/services"
	"gorm.io/gorm"
)

var (
	ErrFoodNameTooShort = errors.New("food name must be at least 2 characters")
	ErrQuotaExceeded    = errors.New("daily free estimate limit reached")
	ErrInvalidDay       = errors.New("day must be formatted YYYY-MM-DD")
	ErrFoodLogNotFound  = errors.New("food log not found")
)

const estimateSystemPrompt = `You are a nutrition analysis assistant. Given a food description, respond with ONLY a JSON object, no markdown, no commentary:
{"description": "...", "calories": 0, "protein_g": 0, "carbs_g": 0, "fat_g": 0, "fiber_g": 0, "sugar_g": 0, "sodium_mg": 0, "serving_size": "...", "confidence": "high|medium|low"}
Estimate for a typical single serving unless a quantity is given.`

const lookupSystemPrompt = `Respond with ONLY this JSON for the named food, typical single serving:
{"description": "...", "calories": 0, "protein_g": 0, "carbs_g": 0, "fat_g": 0, "fiber_g": 0, "sugar_g": 0, "sodium_mg": 0, "serving_size": "...", "confidence": "high|medium|low"}`

type NutritionService struct {
	db         *gorm.DB
	client     *ai.Client
	subs       *services.SubscriptionService
	primary    ai.Provider
	fallback   ai.Provider
	freePerDay int
}

func NewNutritionService(db *gorm.DB, client *ai.Client, subs *services.SubscriptionService, cfg *config.Config) *NutritionService {
	return &NutritionService{
		db:     db,
		client: client,
		subs:   subs,
		primary: ai.Provider{
			APIURL: cfg.OpenAIAPIURL,
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		},
		fallback: ai.Provider{
			APIURL: cfg.DeepSeekAPIURL,
			APIKey: cfg.DeepSeekAPIKey,
			Model:  cfg.DeepSeekModel,
		},
		freePerDay: cfg.FreeEstimatesPerDay,
	}
}

// Estimate asks the primary provider for a detailed nutrition breakdown and
// normalizes whatever comes back.
func (s *NutritionService) Estimate(userID uuid.UUID, foodName string) (*ai.NutritionEstimate, error) {
	return s.estimate(userID, foodName, s.primary, estimateSystemPrompt, 0.3)
}

// Lookup is the cheaper variant backed by the fallback provider with a terse
// prompt. Same normalization, same quota pool.
func (s *NutritionService) Lookup(userID uuid.UUID, foodName string) (*ai.NutritionEstimate, error) {
	provider := s.fallback
	if !provider.Configured() {
		provider = s.primary
	}
	return s.estimate(userID, foodName, provider, lookupSystemPrompt, 0.1)
}

func (s *NutritionService) estimate(userID uuid.UUID, foodName string, provider ai.Provider, systemPrompt string, temperature float64) (*ai.NutritionEstimate, error) {
	foodName = strings.TrimSpace(foodName)
	if len(foodName) < 2 {
		return nil, ErrFoodNameTooShort
	}

	if err := s.checkQuota(userID); err != nil {
		return nil, err
	}

	raw, err := s.client.Complete(provider, []ai.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Estimate the nutrition for: %s", foodName)},
	}, temperature)
	if err != nil {
		return nil, err
	}

	estimate, err := ai.NormalizeNutrition(raw, foodName)
	if err != nil {
		return nil, err
	}

	s.recordUsage(userID)
	return estimate, nil
}

func (s *NutritionService) checkQuota(userID uuid.UUID) error {
	if s.subs.IsActive(userID) {
		return nil
	}

	var usage EstimateUsage
	day := time.Now().UTC().Format("2006-01-02")
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if usage.Count >= s.freePerDay {
		return ErrQuotaExceeded
	}
	return nil
}

func (s *NutritionService) recordUsage(userID uuid.UUID) {
	day := time.Now().UTC().Format("2006-01-02")

	var usage EstimateUsage
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.db.Create(&EstimateUsage{ID: uuid.New(), UserID: userID, Day: day, Count: 1})
		return
	}
	if err != nil {
		return
	}
	s.db.Model(&usage).Update("count", gorm.Expr("count + 1"))
}

func (s *NutritionService) LogFood(userID uuid.UUID, req LogFoodRequest) (*FoodLog, error) {
	day := req.Day
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, ErrInvalidDay
	}

	log := FoodLog{
		ID:          uuid.New(),
		UserID:      userID,
		Day:         day,
		MealType:    req.MealType,
		Description: req.Description,
		Calories:    req.Calories,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
		FiberG:      req.FiberG,
		SugarG:      req.SugarG,
		SodiumMg:    req.SodiumMg,
		ServingSize: req.ServingSize,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *NutritionService) ListLogs(userID uuid.UUID, day string, limit, offset int) ([]FoodLog, int64, error) {
	var logs []FoodLog
	var total int64

	q := s.db.Model(&FoodLog{}).Where("user_id = ?", userID)
	if day != "" {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return nil, 0, ErrInvalidDay
		}
		q = q.Where("day = ?", day)
	}
	q.Count(&total)

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (s *NutritionService) DeleteLog(userID, logID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, logID).Delete(&FoodLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFoodLogNotFound
	}
	return nil
}

// Totals sums the day's logged nutrients. An empty day means today (UTC).
func (s *NutritionService) Totals(userID uuid.UUID, day string) (*DailyTotals, error) {
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, ErrInvalidDay
	}

	var logs []FoodLog
	if err := s.db.Where("user_id = ? AND day = ?", userID, day).Find(&logs).Error; err != nil {
		return nil, err
	}

	totals := DailyTotals{Day: day, Entries: len(logs)}
	for _, l := range logs {
		totals.Calories += l.Calories
		totals.ProteinG += l.ProteinG
		totals.CarbsG += l.CarbsG
		totals.FatG += l.FatG
		totals.FiberG += l.FiberG
		totals.SugarG += l.SugarG
		totals.SodiumMg += l.SodiumMg
	}
	return &totals, nil
}
