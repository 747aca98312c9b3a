package checkins

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"gorm.io/gorm"
)

type CheckInModule struct{}

func New() *CheckInModule {
	return &CheckInModule{}
}

func (m *CheckInModule) ID() string { return "checkins" }

func (m *CheckInModule) Models() []interface{} {
	return []interface{}{
		&CheckIn{},
		&CheckInStreak{},
	}
}

func (m *CheckInModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewCheckInService(db)
	handler := NewCheckInHandler(svc)

	router.Post("/checkins", handler.Upsert)
	router.Get("/checkins", handler.List)
	router.Get("/checkins/streak", handler.GetStreak)
	router.Get("/checkins/:day", handler.GetByDay)
	router.Delete("/checkins/:id", handler.Delete)
}

func (m *CheckInModule) DeletionSteps() []account.Step {
	return []account.Step{
		{Label: "check-ins", Delete: account.DeleteOwned(&CheckIn{})},
		{Label: "check-in streaks", Delete: account.DeleteOwned(&CheckInStreak{})},
	}
}
