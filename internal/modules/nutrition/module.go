package nutrition

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"github.com/vitalog-app/vitalog-backend/internal/services"
	"gorm.io/gorm"
)

type NutritionModule struct {
	client *ai.Client
	subs   *services.SubscriptionService
}

func New(client *ai.Client, subs *services.SubscriptionService) *NutritionModule {
	return &NutritionModule{client: client, subs: subs}
}

func (m *NutritionModule) ID() string { return "nutrition" }

func (m *NutritionModule) Models() []interface{} {
	return []interface{}{
		&FoodLog{},
		&EstimateUsage{},
	}
}

func (m *NutritionModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewNutritionService(db, m.client, m.subs, cfg)
	handler := NewNutritionHandler(svc)

	router.Post("/nutrition/estimate", handler.Estimate)
	router.Post("/nutrition/lookup", handler.Lookup)

	router.Post("/nutrition/logs", handler.LogFood)
	router.Get("/nutrition/logs", handler.ListLogs)
	router.Get("/nutrition/totals", handler.Totals)
	router.Delete("/nutrition/logs/:id", handler.DeleteLog)
}

func (m *NutritionModule) DeletionSteps() []account.Step {
	return []account.Step{
		{Label: "food logs", Delete: account.DeleteOwned(&FoodLog{})},
		{Label: "estimate usage", Delete: account.DeleteOwned(&EstimateUsage{})},
	}
}
