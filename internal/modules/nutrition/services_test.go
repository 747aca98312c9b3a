package nutrition

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/models"
	"github.com/vitalog-app/vitalog-backend/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&FoodLog{}, &EstimateUsage{}, &models.Subscription{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM food_logs")
		db.Exec("DELETE FROM estimate_usages")
		db.Exec("DELETE FROM subscriptions")
	})
	return db
}

// fakeProvider returns an OpenAI-style completion whose message content is
// the given string.
func fakeProvider(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, db *gorm.DB, apiURL string, freePerDay int) *NutritionService {
	t.Helper()
	cfg := &config.Config{
		OpenAIAPIURL:        apiURL,
		OpenAIAPIKey:        "test-key",
		OpenAIModel:         "gpt-test",
		DeepSeekAPIURL:      apiURL,
		DeepSeekAPIKey:      "test-key",
		DeepSeekModel:       "deepseek-test",
		FreeEstimatesPerDay: freePerDay,
	}
	return NewNutritionService(db, ai.NewClient(0), services.NewSubscriptionService(db), cfg)
}

func TestEstimateNormalizesFencedResponse(t *testing.T) {
	db := openTestDB(t)
	srv := fakeProvider(t, "```json\n{\"description\": \"One medium banana\", \"calories\": 105.4, \"protein_g\": 1.34, \"carbs_g\": 27, \"fat_g\": 0.39, \"serving_size\": \"1 medium (118g)\", \"confidence\": \"high\"}\n```")

	svc := newTestService(t, db, srv.URL, 5)
	est, err := svc.Estimate(uuid.New(), "banana")
	require.NoError(t, err)

	assert.Equal(t, "One medium banana", est.Description)
	assert.Equal(t, 105, est.Calories)
	assert.Equal(t, 1.3, est.ProteinG)
	assert.Equal(t, 27.0, est.CarbsG)
	assert.Equal(t, 0.4, est.FatG)
	assert.Equal(t, "high", est.Confidence)
}

func TestEstimateRejectsShortFoodName(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, "http://unused.invalid", 5)

	_, err := svc.Estimate(uuid.New(), " a ")
	assert.ErrorIs(t, err, ErrFoodNameTooShort)
}

func TestEstimateQuota(t *testing.T) {
	db := openTestDB(t)
	srv := fakeProvider(t, `{"calories": 100, "confidence": "medium"}`)
	svc := newTestService(t, db, srv.URL, 2)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := svc.Estimate(userID, "oatmeal")
		require.NoError(t, err)
	}

	_, err := svc.Estimate(userID, "oatmeal")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Another user still has quota.
	_, err = svc.Estimate(uuid.New(), "oatmeal")
	assert.NoError(t, err)
}

func TestEstimateQuotaLiftedForSubscribers(t *testing.T) {
	db := openTestDB(t)
	srv := fakeProvider(t, `{"calories": 100}`)
	svc := newTestService(t, db, srv.URL, 1)
	userID := uuid.New()

	require.NoError(t, db.Create(&models.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		Status:           "active",
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
	}).Error)

	for i := 0; i < 3; i++ {
		_, err := svc.Estimate(userID, "rice")
		require.NoError(t, err)
	}
}

func TestEstimateSurfacesRateLimit(t *testing.T) {
	db := openTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "Rate limit reached. Please retry in 12.5 seconds."}}`)
	}))
	t.Cleanup(srv.Close)

	svc := newTestService(t, db, srv.URL, 5)
	_, err := svc.Estimate(uuid.New(), "banana")
	require.Error(t, err)

	limited, retryAfter := ai.IsRateLimited(err)
	assert.True(t, limited)
	assert.Equal(t, 13, retryAfter)
}

func TestLogFoodAndTotals(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, "http://unused.invalid", 5)
	userID := uuid.New()

	_, err := svc.LogFood(userID, LogFoodRequest{
		Day: "2026-05-01", MealType: "breakfast", Description: "Oatmeal",
		Calories: 150, ProteinG: 5, CarbsG: 27, FatG: 2.5, SodiumMg: 100,
	})
	require.NoError(t, err)

	_, err = svc.LogFood(userID, LogFoodRequest{
		Day: "2026-05-01", MealType: "lunch", Description: "Salad",
		Calories: 320, ProteinG: 12.5, CarbsG: 18, FatG: 21, SodiumMg: 400,
	})
	require.NoError(t, err)

	totals, err := svc.Totals(userID, "2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, 470, totals.Calories)
	assert.Equal(t, 17.5, totals.ProteinG)
	assert.Equal(t, 500, totals.SodiumMg)
	assert.Equal(t, 2, totals.Entries)

	// Other days stay empty.
	totals, err = svc.Totals(userID, "2026-05-02")
	require.NoError(t, err)
	assert.Zero(t, totals.Calories)
	assert.Zero(t, totals.Entries)
}

func TestLogFoodRejectsBadDay(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, "http://unused.invalid", 5)

	_, err := svc.LogFood(uuid.New(), LogFoodRequest{Day: "May 1st"})
	assert.ErrorIs(t, err, ErrInvalidDay)
}
