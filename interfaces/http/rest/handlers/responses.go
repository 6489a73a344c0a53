package handlers

import (
	"net/http"
	"time"

	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
	"merculy-backend/pkg/common"
	pkgerrors "merculy-backend/pkg/errors"
)

// ArticleResponse is the wire shape of a stored article. AI fields are
// omitted entirely when the article was persisted without enrichment.
type ArticleResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Source        string   `json:"source"`
	URL           string   `json:"url"`
	Topic         string   `json:"topic"`
	Summary       string   `json:"summary,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
	PoliticalBias string   `json:"political_bias,omitempty"`
	PublishedAt   string   `json:"published_at"`
	CreatedAt     string   `json:"created_at"`
}

// NewsletterResponse is the wire shape of a newsletter document
type NewsletterResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Title        string             `json:"title"`
	Topic        string             `json:"topic"`
	ArticleIDs   []string           `json:"article_ids"`
	ArticleCount int                `json:"article_count"`
	CreatedAt    string             `json:"created_at"`
	Articles     []ArticleResponse  `json:"articles,omitempty"`
}

// UserResponse is the wire shape of a user profile
type UserResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Interests        []string `json:"interests"`
	FollowedChannels []string `json:"followed_channels"`
	NewsletterFormat string   `json:"newsletter_format"`
	DeliveryTime     string   `json:"delivery_time"`
	DeliveryDays     []string `json:"delivery_days"`
	CreatedAt        string   `json:"created_at"`
}

func toArticleResponse(a *news.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:          a.ID(),
		Title:       a.Title(),
		Content:     a.Content(),
		Source:      a.Source(),
		URL:         a.URL(),
		Topic:       a.Topic(),
		PublishedAt: a.PublishedAt().Format(time.RFC3339),
		CreatedAt:   a.CreatedAt().Format(time.RFC3339),
	}

	if a.IsEnriched() {
		resp.Summary = a.Summary()
		resp.Highlights = a.Highlights()
		resp.PoliticalBias = string(a.PoliticalBias())
	}

	return resp
}

func toNewsletterResponse(n *news.Newsletter, articles []*news.Article) NewsletterResponse {
	resp := NewsletterResponse{
		ID:           n.ID(),
		UserID:       n.UserID(),
		Title:        n.Title(),
		Topic:        n.Topic(),
		ArticleIDs:   n.ArticleIDs(),
		ArticleCount: n.ArticleCount(),
		CreatedAt:    n.CreatedAt().Format(time.RFC3339),
	}

	for _, a := range articles {
		resp.Articles = append(resp.Articles, toArticleResponse(a))
	}

	return resp
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:               u.ID(),
		Name:             u.Name(),
		Email:            u.Email(),
		Interests:        u.Interests(),
		FollowedChannels: u.FollowedChannels(),
		NewsletterFormat: string(u.NewsletterFormat()),
		DeliveryTime:     u.DeliveryTime(),
		DeliveryDays:     u.DeliveryDays(),
		CreatedAt:        u.CreatedAt().Format(time.RFC3339),
	}
}

// respondAppError maps a service error onto the response envelope,
// preserving the taxonomy code and HTTP status
func respondAppError(w http.ResponseWriter, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
		return
	}
	common.RespondError(w, http.StatusInternalServerError,
		common.StandardErrorCodes.InternalError, "Internal server error")
}
