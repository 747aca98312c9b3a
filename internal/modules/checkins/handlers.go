package checkins

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vitalog-app/vitalog-backend/internal/dto"
	"github.com/vitalog-app/vitalog-backend/internal/middleware"
)

type CheckInHandler struct {
	service *CheckInService
}

func NewCheckInHandler(service *CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) Upsert(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req UpsertCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	checkIn, err := h.service.Upsert(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidMood) ||
			errors.Is(err, ErrInvalidEnergy) ||
			errors.Is(err, ErrInvalidSleep) ||
			errors.Is(err, ErrInvalidDay) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save check-in",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(checkIn)
}

func (h *CheckInHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "30"))
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	checkIns, total, err := h.service.List(userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch check-ins",
		})
	}

	return c.JSON(CheckInListResponse{
		CheckIns: checkIns,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *CheckInHandler) GetByDay(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	checkIn, err := h.service.GetByDay(userID, c.Params("day"))
	if err != nil {
		if errors.Is(err, ErrCheckInNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Check-in not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch check-in",
		})
	}

	return c.JSON(checkIn)
}

func (h *CheckInHandler) GetStreak(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	streak, err := h.service.GetStreak(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch streak",
		})
	}

	return c.JSON(streak)
}

func (h *CheckInHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	checkInID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid check-in ID",
		})
	}

	if err := h.service.Delete(userID, checkInID); err != nil {
		if errors.Is(err, ErrCheckInNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Check-in not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete check-in",
		})
	}

	return c.JSON(fiber.Map{"message": "Check-in deleted"})
}
