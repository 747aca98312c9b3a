package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vitalog-app/vitalog-backend/internal/dto"
	"github.com/vitalog-app/vitalog-backend/internal/models"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ListSystemLogs returns recent persisted error logs, newest first.
func (h *AdminHandler) ListSystemLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var logs []models.SystemLog
	if err := h.db.Order("timestamp DESC").Limit(limit).Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch system logs",
		})
	}

	return c.JSON(fiber.Map{"logs": logs, "count": len(logs)})
}
