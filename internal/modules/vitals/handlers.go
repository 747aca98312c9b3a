package vitals

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vitalog-app/vitalog-backend/internal/dto"
	"github.com/vitalog-app/vitalog-backend/internal/middleware"
)

type VitalHandler struct {
	service *VitalService
}

func NewVitalHandler(service *VitalService) *VitalHandler {
	return &VitalHandler{service: service}
}

func (h *VitalHandler) Record(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req RecordReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reading, err := h.service.Record(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidType) ||
			errors.Is(err, ErrInvalidValue) ||
			errors.Is(err, ErrMissingDiastolic) ||
			errors.Is(err, ErrInvalidRecordedAt) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record reading",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reading)
}

func (h *VitalHandler) List(c *fiber.Ctx) error {
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

	readings, total, err := h.service.List(userID, c.Query("type"), limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch readings",
		})
	}

	return c.JSON(ReadingListResponse{
		Readings: readings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

func (h *VitalHandler) Latest(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	latest, err := h.service.Latest(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch latest readings",
		})
	}

	return c.JSON(fiber.Map{"latest": latest})
}

func (h *VitalHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	readingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid reading ID",
		})
	}

	if err := h.service.Delete(userID, readingID); err != nil {
		if errors.Is(err, ErrReadingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Reading not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete reading",
		})
	}

	return c.JSON(fiber.Map{"message": "Reading deleted"})
}
