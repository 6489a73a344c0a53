package handlers

import (
	"net/http"

	"merculy-backend/application/services"
	"merculy-backend/domain/news"
	"merculy-backend/pkg/auth"
	"merculy-backend/pkg/common"
	"merculy-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewsletterHandler handles newsletter generation and history requests
type NewsletterHandler struct {
	assembler         *services.NewsletterAssembler
	newsletterService *services.NewsletterService
	logger            *zap.Logger
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(
	assembler *services.NewsletterAssembler,
	newsletterService *services.NewsletterService,
	logger *zap.Logger,
) *NewsletterHandler {
	return &NewsletterHandler{
		assembler:         assembler,
		newsletterService: newsletterService,
		logger:            logger,
	}
}

// GenerateRequest represents the request body for generation. Both
// fields are optional overrides of the user's stored preferences.
type GenerateRequest struct {
	Format string `json:"format,omitempty" validate:"omitempty,oneof=single by_topic"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// FetchFailureResponse reports one provider call that failed during
// generation
type FetchFailureResponse struct {
	Topic  string `json:"topic"`
	Domain string `json:"domain,omitempty"`
	Error  string `json:"error"`
}

// GenerateResponse reports everything a generation run produced
type GenerateResponse struct {
	Newsletters       []NewsletterResponse   `json:"newsletters"`
	ArticleCount      int                    `json:"article_count"`
	DroppedTopics     []string               `json:"dropped_topics,omitempty"`
	FetchFailures     []FetchFailureResponse `json:"fetch_failures,omitempty"`
	EnrichmentSkipped bool                   `json:"enrichment_skipped,omitempty"`
}

// ListNewslettersResponse is one page of newsletter history
type ListNewslettersResponse struct {
	Newsletters []NewsletterResponse `json:"newsletters"`
}

// Generate handles POST /api/v1/newsletters/generate
func (h *NewsletterHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req GenerateRequest
	if r.ContentLength > 0 {
		if err := common.ParseJSONBody(r, &req, 1<<14); err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
			return
		}
	}

	result, err := h.assembler.Generate(r.Context(), userCtx.UserID, services.AssembleRequest{
		Format: news.Format(req.Format),
		Limit:  req.Limit,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	resp := GenerateResponse{
		Newsletters:       make([]NewsletterResponse, 0, len(result.Newsletters)),
		ArticleCount:      result.ArticleCount,
		DroppedTopics:     result.DroppedTopics,
		EnrichmentSkipped: result.EnrichmentSkipped,
	}
	for _, n := range result.Newsletters {
		resp.Newsletters = append(resp.Newsletters, toNewsletterResponse(n, nil))
	}
	for _, f := range result.FetchFailures {
		resp.FetchFailures = append(resp.FetchFailures, FetchFailureResponse{
			Topic:  f.Topic,
			Domain: f.Domain,
			Error:  f.Err.Error(),
		})
	}

	common.RespondJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/v1/newsletters
func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	pagination := common.ExtractPaginationParams(r)
	topicFilter := r.URL.Query().Get("topic")

	newsletters, total, err := h.newsletterService.List(
		r.Context(), userCtx.UserID, topicFilter, pagination.Page, pagination.PageSize)
	if err != nil {
		respondAppError(w, err)
		return
	}

	resp := ListNewslettersResponse{Newsletters: make([]NewsletterResponse, 0, len(newsletters))}
	for _, n := range newsletters {
		resp.Newsletters = append(resp.Newsletters, toNewsletterResponse(n, nil))
	}

	common.RespondWithMeta(w, http.StatusOK, resp, &common.MetaInfo{
		Pagination: common.BuildPaginationMeta(pagination.Page, pagination.PageSize, total),
	})
}

// Get handles GET /api/v1/newsletters/{newsletterID}
func (h *NewsletterHandler) Get(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	newsletterID := chi.URLParam(r, "newsletterID")
	view, err := h.newsletterService.Get(r.Context(), userCtx.UserID, newsletterID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toNewsletterResponse(view.Newsletter, view.Articles))
}

// Delete handles DELETE /api/v1/newsletters/{newsletterID}
func (h *NewsletterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	newsletterID := chi.URLParam(r, "newsletterID")
	if err := h.newsletterService.Delete(r.Context(), userCtx.UserID, newsletterID); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
