package services

import (
	"context"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
	pkgerrors "merculy-backend/pkg/errors"

	"go.uber.org/zap"
)

// NewsletterView is a newsletter with its article references resolved
type NewsletterView struct {
	Newsletter *news.Newsletter
	Articles   []*news.Article
}

// NewsletterService handles reads and deletes of persisted newsletters
type NewsletterService struct {
	newsletters ports.NewsletterRepository
	articles    ports.ArticleRepository
	logger      *zap.Logger
}

// NewNewsletterService creates a newsletter service
func NewNewsletterService(newsletters ports.NewsletterRepository, articles ports.ArticleRepository, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{
		newsletters: newsletters,
		articles:    articles,
		logger:      logger,
	}
}

// List retrieves a user's newsletters newest first, optionally
// filtered by topic. The filter applies before pagination.
func (s *NewsletterService) List(ctx context.Context, userID, topicFilter string, page, pageSize int) ([]*news.Newsletter, int, error) {
	return s.newsletters.ListByUser(ctx, userID, topicFilter, page, pageSize)
}

// Get retrieves one newsletter with its articles resolved from the
// reference list, in presentation order
func (s *NewsletterService) Get(ctx context.Context, userID, id string) (*NewsletterView, error) {
	newsletter, err := s.newsletters.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ids := newsletter.ArticleIDs()
	articles := make([]*news.Article, 0, len(ids))
	for _, articleID := range ids {
		article, err := s.articles.GetByID(ctx, articleID)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				// Dangling references should never be persisted; log
				// loudly and keep the rest of the newsletter readable
				s.logger.Error("Newsletter references missing article",
					zap.String("newsletter_id", id),
					zap.String("article_id", articleID),
				)
				continue
			}
			return nil, err
		}
		articles = append(articles, article)
	}

	return &NewsletterView{
		Newsletter: newsletter,
		Articles:   articles,
	}, nil
}

// Delete removes a newsletter document. The referenced articles stay
// in the store; they may be shared with other newsletters.
func (s *NewsletterService) Delete(ctx context.Context, userID, id string) error {
	if err := s.newsletters.DeleteByID(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("Newsletter deleted",
		zap.String("newsletter_id", id),
		zap.String("user_id", userID),
	)
	return nil
}
