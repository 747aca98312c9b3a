package dto

import (
	"github.com/google/uuid"
	"github.com/vitalog-app/vitalog-backend/internal/account"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	TimeZone    string `json:"time_zone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type DeleteAccountResponse struct {
	Success         bool                 `json:"success"`
	Message         string               `json:"message"`
	DeletionResults []account.StepResult `json:"deletionResults"`
}

type DeleteAccountError struct {
	Error           string               `json:"error"`
	DeletionResults []account.StepResult `json:"deletionResults,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
