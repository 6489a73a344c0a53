package handlers

import (
	"net/http"

	"merculy-backend/application/services"
	"merculy-backend/pkg/common"
	"merculy-backend/pkg/utils"

	"go.uber.org/zap"
)

const maxAuthBodyBytes = 1 << 16

// AuthHandler handles signup, login and oauth requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignupRequest represents the request body for account creation
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the request body for password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthRequest represents the request body for oauth sign-in. The
// token is assumed to be verified upstream; provider and subject
// identify the external account.
type OAuthRequest struct {
	Provider string `json:"provider" validate:"required,oneof=google apple"`
	Subject  string `json:"subject" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

// AuthResponse carries the issued token and profile
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := common.ParseJSONBody(r, &req, maxAuthBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      toUserResponse(result.User),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxAuthBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      toUserResponse(result.User),
	})
}

// OAuth handles POST /api/v1/auth/oauth
func (h *AuthHandler) OAuth(w http.ResponseWriter, r *http.Request) {
	var req OAuthRequest
	if err := common.ParseJSONBody(r, &req, maxAuthBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.authService.OAuthLogin(r.Context(), req.Provider, req.Subject, req.Email, req.Name)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      toUserResponse(result.User),
	})
}
