package coach

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vitalog-app/vitalog-backend/internal/ai"
	"github.com/vitalog-app/vitalog-backend/internal/dto"
	"github.com/vitalog-app/vitalog-backend/internal/middleware"
)

type CoachHandler struct {
	service *CoachService
}

func NewCoachHandler(service *CoachService) *CoachHandler {
	return &CoachHandler{service: service}
}

func (h *CoachHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.service.SendMessage(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please enter a message",
			})
		case errors.Is(err, ErrConversationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Conversation not found",
			})
		case errors.Is(err, ErrQuotaExceeded):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":        "Daily free message limit reached. Upgrade for unlimited coaching.",
				"limitReached": true,
			})
		}

		if limited, retryAfter := ai.IsRateLimited(err); limited {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "The coach is busy right now. Please try again shortly.",
				"isRateLimit": true,
				"retryAfter":  retryAfter,
			})
		}

		slog.Error("coach message failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not reach the coach right now. Please try again.",
		})
	}

	return c.JSON(resp)
}

func (h *CoachHandler) ListConversations(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	convs, err := h.service.ListConversations(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch conversations",
		})
	}

	return c.JSON(ConversationListResponse{Conversations: convs})
}

func (h *CoachHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid conversation ID",
		})
	}

	messages, err := h.service.ListMessages(userID, convID)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Conversation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch messages",
		})
	}

	return c.JSON(MessageListResponse{Messages: messages})
}

func (h *CoachHandler) DeleteConversation(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid conversation ID",
		})
	}

	if err := h.service.DeleteConversation(userID, convID); err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Conversation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete conversation",
		})
	}

	return c.JSON(fiber.Map{"message": "Conversation deleted"})
}

func (h *CoachHandler) DailyTip(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	tip, err := h.service.DailyTip(userID)
	if err != nil {
		if limited, retryAfter := ai.IsRateLimited(err); limited {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "The coach is busy right now. Please try again shortly.",
				"isRateLimit": true,
				"retryAfter":  retryAfter,
			})
		}
		slog.Error("daily tip failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate a tip right now. Please try again.",
		})
	}

	return c.JSON(tip)
}
