package services

import (
	"context"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"

	"go.uber.org/zap"
)

// NewsService handles article reads, catalog lookups and page scraping
type NewsService struct {
	articles  ports.ArticleRepository
	catalog   ports.SourceCatalog
	extractor ports.ContentExtractor
	logger    *zap.Logger
}

// NewNewsService creates a news service
func NewNewsService(articles ports.ArticleRepository, catalog ports.SourceCatalog, extractor ports.ContentExtractor, logger *zap.Logger) *NewsService {
	return &NewsService{
		articles:  articles,
		catalog:   catalog,
		extractor: extractor,
		logger:    logger,
	}
}

// GetArticle retrieves a stored article by id
func (s *NewsService) GetArticle(ctx context.Context, id string) (*news.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// Topics lists the curated topic catalog
func (s *NewsService) Topics() []ports.Topic {
	return s.catalog.Topics()
}

// Channels lists the active channel catalog
func (s *NewsService) Channels() []ports.Channel {
	return s.catalog.Channels()
}

// Scrape extracts readable content from a web page
func (s *NewsService) Scrape(ctx context.Context, url string) (ports.ExtractedContent, error) {
	content, err := s.extractor.Extract(ctx, url)
	if err != nil {
		s.logger.Warn("Page extraction failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return ports.ExtractedContent{}, err
	}
	return content, nil
}
