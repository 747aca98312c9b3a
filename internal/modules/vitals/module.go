package vitals

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"gorm.io/gorm"
)

type VitalModule struct{}

func New() *VitalModule {
	return &VitalModule{}
}

func (m *VitalModule) ID() string { return "vitals" }

func (m *VitalModule) Models() []interface{} {
	return []interface{}{
		&VitalReading{},
	}
}

func (m *VitalModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewVitalService(db)
	handler := NewVitalHandler(svc)

	router.Post("/vitals", handler.Record)
	router.Get("/vitals", handler.List)
	router.Get("/vitals/latest", handler.Latest)
	router.Delete("/vitals/:id", handler.Delete)
}

func (m *VitalModule) DeletionSteps() []account.Step {
	return []account.Step{
		{Label: "vital readings", Delete: account.DeleteOwned(&VitalReading{})},
	}
}
