package modules

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/account"
	"github.com/vitalog-app/vitalog-backend/internal/config"
	"gorm.io/gorm"
)

// Module defines the interface every feature area must implement.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)

	// DeletionSteps returns the module's account-deletion categories, in the
	// order they should be reported during account removal.
	DeletionSteps() []account.Step
}
