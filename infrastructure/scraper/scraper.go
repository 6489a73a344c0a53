// Package scraper implements the ContentExtractor port. It pulls the
// readable body out of an article page, preferring readability
// extraction and falling back to stripped page text.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"merculy-backend/application/ports"
	pkgerrors "merculy-backend/pkg/errors"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Mozilla/5.0 (compatible; merculy-bot/1.0)"
)

// Extractor fetches and extracts article content
type Extractor struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewExtractor creates a content extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Extract downloads a page and returns its readable content
func (e *Extractor) Extract(ctx context.Context, pageURL string) (ports.ExtractedContent, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ports.ExtractedContent{}, pkgerrors.NewValidationError("invalid article url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ports.ExtractedContent{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return ports.ExtractedContent{}, pkgerrors.NewExternalError("scraper", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.ExtractedContent{}, pkgerrors.NewExternalError("scraper", fmt.Errorf("status %d fetching %s", resp.StatusCode, pageURL))
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		e.logger.Debug("Readability extraction failed, using page text",
			zap.Error(err),
			zap.String("url", pageURL),
		)
		return e.fallback(ctx, pageURL)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return e.fallback(ctx, pageURL)
	}

	return ports.ExtractedContent{
		Title:   article.Title,
		Byline:  article.Byline,
		Excerpt: article.Excerpt,
		Text:    text,
		Length:  len(text),
	}, nil
}

// fallback refetches the page and strips it to visible text
func (e *Extractor) fallback(ctx context.Context, pageURL string) (ports.ExtractedContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ports.ExtractedContent{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return ports.ExtractedContent{}, pkgerrors.NewExternalError("scraper", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ports.ExtractedContent{}, pkgerrors.NewExternalError("scraper", fmt.Errorf("parse page: %w", err))
	}

	doc.Find("script, style, nav, header, footer, aside").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if text == "" {
		return ports.ExtractedContent{}, pkgerrors.NewExternalError("scraper", fmt.Errorf("no readable content at %s", pageURL))
	}

	return ports.ExtractedContent{
		Title:  title,
		Text:   text,
		Length: len(text),
	}, nil
}
