package handlers

import (
	"net/http"

	"merculy-backend/application/services"
	"merculy-backend/pkg/auth"
	"merculy-backend/pkg/common"
	"merculy-backend/pkg/utils"

	"go.uber.org/zap"
)

// UserHandler handles profile and preference requests
type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// UpdatePreferencesRequest represents the request body for preference
// updates. Omitted fields are left unchanged.
type UpdatePreferencesRequest struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Interests        []string `json:"interests,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
	FollowedChannels []string `json:"followed_channels,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	NewsletterFormat *string  `json:"newsletter_format,omitempty" validate:"omitempty,oneof=single by_topic"`
	DeliveryTime     *string  `json:"delivery_time,omitempty" validate:"omitempty,len=5"`
	DeliveryDays     []string `json:"delivery_days,omitempty" validate:"omitempty,max=7,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
}

// GetProfile handles GET /api/v1/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	u, err := h.userService.Get(r.Context(), userCtx.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdatePreferences handles PUT /api/v1/users/me
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req UpdatePreferencesRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	u, err := h.userService.UpdatePreferences(r.Context(), userCtx.UserID, services.PreferenceUpdate{
		Name:             req.Name,
		Interests:        req.Interests,
		FollowedChannels: req.FollowedChannels,
		NewsletterFormat: req.NewsletterFormat,
		DeliveryTime:     req.DeliveryTime,
		DeliveryDays:     req.DeliveryDays,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toUserResponse(u))
}
