package medications

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"gorm.io/gorm"
)

type MedicationModule struct{}

func New() *MedicationModule {
	return &MedicationModule{}
}

func (m *MedicationModule) ID() string { return "medications" }

func (m *MedicationModule) Models() []interface{} {
	return []interface{}{
		&Medication{},
		&DoseLog{},
	}
}

func (m *MedicationModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewMedicationService(db)
	handler := NewMedicationHandler(svc)

	router.Post("/medications", handler.Create)
	router.Get("/medications", handler.List)
	router.Get("/medications/:id", handler.Get)
	router.Put("/medications/:id", handler.Update)
	router.Delete("/medications/:id", handler.Delete)

	router.Post("/doses", handler.LogDose)
	router.Get("/doses", handler.ListDoses)
	router.Get("/doses/today", handler.TodaySummary)
	router.Delete("/doses/:id", handler.DeleteDose)
}

func (m *MedicationModule) DeletionSteps() []account.Step {
	return []account.Step{
		{Label: "doses", Delete: account.DeleteOwned(&DoseLog{})},
		{Label: "medications", Delete: account.DeleteOwned(&Medication{})},
	}
}
