package handlers

import (
	"net/http"

	"merculy-backend/application/services"
	"merculy-backend/pkg/common"
	"merculy-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewsHandler handles article, catalog and scrape requests
type NewsHandler struct {
	newsService *services.NewsService
	logger      *zap.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService *services.NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		logger:      logger,
	}
}

// TopicResponse is one curated topic
type TopicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChannelResponse is one curated channel
type ChannelResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// ScrapeRequest represents the request body for page extraction
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ScrapeResponse carries extracted page content
type ScrapeResponse struct {
	Title   string `json:"title"`
	Byline  string `json:"byline,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Text    string `json:"text"`
	Length  int    `json:"length"`
}

// ListTopics handles GET /api/v1/news/topics
func (h *NewsHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics := h.newsService.Topics()

	out := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, TopicResponse{ID: t.ID, Name: t.Name})
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"topics": out})
}

// ListChannels handles GET /api/v1/news/channels
func (h *NewsHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels := h.newsService.Channels()

	out := make([]ChannelResponse, 0, len(channels))
	for _, c := range channels {
		out = append(out, ChannelResponse{ID: c.ID, Name: c.Name, Domain: c.Domain})
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"channels": out})
}

// GetArticle handles GET /api/v1/news/articles/{articleID}
func (h *NewsHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")
	if articleID == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Missing article id")
		return
	}

	article, err := h.newsService.GetArticle(r.Context(), articleID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toArticleResponse(article))
}

// Scrape handles POST /api/v1/news/scrape
func (h *NewsHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := common.ParseJSONBody(r, &req, 1<<14); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	content, err := h.newsService.Scrape(r.Context(), req.URL)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, ScrapeResponse{
		Title:   content.Title,
		Byline:  content.Byline,
		Excerpt: content.Excerpt,
		Text:    content.Text,
		Length:  content.Length,
	})
}
