package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// FoodLog is one logged food item. The nutrient columns mirror the normalized
// AI estimate so a log can be created straight from an estimate response.
type FoodLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Day         string    `gorm:"size:10;index" json:"day"`
	MealType    string    `gorm:"size:20" json:"meal_type"`
	Description string    `gorm:"type:text" json:"description"`
	Calories    int       `json:"calories"`
	ProteinG    float64   `json:"protein_g"`
	CarbsG      float64   `json:"carbs_g"`
	FatG        float64   `json:"fat_g"`
	FiberG      float64   `json:"fiber_g"`
	SugarG      float64   `json:"sugar_g"`
	SodiumMg    int       `json:"sodium_mg"`
	ServingSize string    `gorm:"size:100" json:"serving_size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EstimateUsage counts AI estimate calls per user per day for free-tier
// quota enforcement.
type EstimateUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_estimate_usage_user_day" json:"user_id"`
	Day       string    `gorm:"size:10;uniqueIndex:idx_estimate_usage_user_day" json:"day"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- DTOs ---

type EstimateRequest struct {
	FoodName string `json:"foodName"`
}

type LogFoodRequest struct {
	Day         string  `json:"day"`
	MealType    string  `json:"meal_type"`
	Description string  `json:"description"`
	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	FiberG      float64 `json:"fiber_g"`
	SugarG      float64 `json:"sugar_g"`
	SodiumMg    int     `json:"sodium_mg"`
	ServingSize string  `json:"serving_size"`
}

type FoodLogListResponse struct {
	Logs   []FoodLog `json:"logs"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type DailyTotals struct {
	Day      string  `json:"day"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SugarG   float64 `json:"sugar_g"`
	SodiumMg int     `json:"sodium_mg"`
	Entries  int     `json:"entries"`
}
