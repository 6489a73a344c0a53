// Package newsapi implements the NewsProvider port against the
// NewsAPI "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
	pkgerrors "merculy-backend/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// Client calls the NewsAPI REST interface
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a NewsAPI client. baseURL points at the API root,
// e.g. https://newsapi.org/v2.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type articleResponse struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type everythingResponse struct {
	Status   string            `json:"status"`
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Articles []articleResponse `json:"articles"`
}

// Fetch queries the everything endpoint. An empty result set is not
// an error; only transport and API failures are.
func (c *Client) Fetch(ctx context.Context, req ports.FetchRequest) ([]news.RawArticle, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	if req.Domain != "" {
		params.Set("domains", req.Domain)
	}
	if req.Language != "" {
		params.Set("language", req.Language)
	}
	if req.Limit > 0 {
		params.Set("pageSize", strconv.Itoa(req.Limit))
	}
	params.Set("sortBy", "publishedAt")

	endpoint := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.NewExternalError("newsapi", err)
	}
	defer resp.Body.Close()

	var body everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, pkgerrors.NewExternalError("newsapi", fmt.Errorf("decode response: %w", err))
	}

	if resp.StatusCode != http.StatusOK || body.Status != "ok" {
		c.logger.Warn("News provider rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("code", body.Code),
			zap.String("message", body.Message),
		)
		return nil, pkgerrors.NewExternalError("newsapi",
			fmt.Errorf("status %d: %s", resp.StatusCode, body.Message))
	}

	articles := make([]news.RawArticle, 0, len(body.Articles))
	for _, a := range body.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			publishedAt = time.Now().UTC()
		}
		articles = append(articles, news.RawArticle{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: publishedAt,
		})
	}

	c.logger.Debug("Fetched articles",
		zap.String("query", req.Query),
		zap.String("domain", req.Domain),
		zap.Int("count", len(articles)),
	)
	return articles, nil
}
