package nutrition

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/dto"
	"github.com/vitalog-app/vitalog-backend/internal/middleware"
)

type NutritionHandler struct {
	service *NutritionService
}

func NewNutritionHandler(service *NutritionService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

// Estimate runs the detailed estimator against the primary provider.
func (h *NutritionHandler) Estimate(c *fiber.Ctx) error {
	return h.runEstimator(c, h.service.Estimate)
}

// Lookup runs the terse estimator against the fallback provider.
func (h *NutritionHandler) Lookup(c *fiber.Ctx) error {
	return h.runEstimator(c, h.service.Lookup)
}

// runEstimator holds the response contract both estimators share: a flat
// estimate on success, a string error otherwise, and rate limits surfaced as
// 429 with a retry hint so clients can back off instead of hammering.
func (h *NutritionHandler) runEstimator(c *fiber.Ctx, estimate func(uuid.UUID, string) (*ai.NutritionEstimate, error)) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req EstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := estimate(userID, req.FoodName)
	if err != nil {
		switch {
		case errors.Is(err, ErrFoodNameTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide a food name (at least 2 characters)",
			})
		case errors.Is(err, ErrQuotaExceeded):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":        "Daily free estimate limit reached. Upgrade for unlimited estimates.",
				"limitReached": true,
			})
		}

		if limited, retryAfter := ai.IsRateLimited(err); limited {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "The nutrition service is busy. Please try again shortly.",
				"isRateLimit": true,
				"retryAfter":  retryAfter,
			})
		}

		slog.Error("nutrition estimate failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not estimate nutrition right now. Please try again.",
		})
	}

	return c.JSON(result)
}

func (h *NutritionHandler) LogFood(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req LogFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	log, err := h.service.LogFood(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidDay) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to log food",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

func (h *NutritionHandler) ListLogs(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	logs, total, err := h.service.ListLogs(userID, c.Query("day"), limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidDay) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch food logs",
		})
	}

	return c.JSON(FoodLogListResponse{
		Logs:   logs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *NutritionHandler) DeleteLog(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	logID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid food log ID",
		})
	}

	if err := h.service.DeleteLog(userID, logID); err != nil {
		if errors.Is(err, ErrFoodLogNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Food log not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete food log",
		})
	}

	return c.JSON(fiber.Map{"message": "Food log deleted"})
}

func (h *NutritionHandler) Totals(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	totals, err := h.service.Totals(userID, c.Query("day"))
	if err != nil {
		if errors.Is(err, ErrInvalidDay) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute daily totals",
		})
	}

	return c.JSON(totals)
}
