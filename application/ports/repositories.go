package ports

import (
	"context"

	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
)

// ArticleRepository defines the interface for article persistence.
// Articles are written once and never updated or deleted by the core.
type ArticleRepository interface {
	// Create persists a new article
	Create(ctx context.Context, article *news.Article) error

	// GetByID retrieves an article by its identifier
	GetByID(ctx context.Context, id string) (*news.Article, error)

	// FindByTopicAndURL looks up an article by its dedup key. Returns
	// nil without error when no match exists.
	FindByTopicAndURL(ctx context.Context, topic, url string) (*news.Article, error)
}

// NewsletterRepository defines the interface for newsletter persistence
type NewsletterRepository interface {
	// Create persists a new newsletter
	Create(ctx context.Context, newsletter *news.Newsletter) error

	// GetByID retrieves one of a user's newsletters
	GetByID(ctx context.Context, userID, id string) (*news.Newsletter, error)

	// DeleteByID removes a newsletter document. Referenced articles
	// are never touched.
	DeleteByID(ctx context.Context, userID, id string) error

	// ListByUser retrieves a user's newsletters newest first. The
	// topic filter is applied before pagination; total counts the
	// filtered set.
	ListByUser(ctx context.Context, userID, topicFilter string, page, pageSize int) ([]*news.Newsletter, int, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, u *user.User) error

	// Update persists preference and profile changes
	Update(ctx context.Context, u *user.User) error

	// GetByID retrieves a user by identifier
	GetByID(ctx context.Context, id string) (*user.User, error)

	// GetByEmail retrieves a user by email. Returns nil without error
	// when no account exists.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetByOAuth retrieves a user by external identity. Returns nil
	// without error when no account exists.
	GetByOAuth(ctx context.Context, provider, subject string) (*user.User, error)
}

// FetchRequest scopes one news provider call
type FetchRequest struct {
	// Query is the search expression, usually topic keywords
	Query string

	// Domain restricts results to one source domain; empty means any
	Domain string

	// Limit caps the number of returned articles
	Limit int

	// Language narrows results to one language code
	Language string
}

// NewsProvider defines the interface to an external news API. Fetch
// may return fewer articles than requested, including none; an error
// means transport failure, never "no results".
type NewsProvider interface {
	Fetch(ctx context.Context, req FetchRequest) ([]news.RawArticle, error)
}

// Enricher defines the interface to the AI enrichment backend.
// Availability must be checked before calling Enrich; the assembler
// tolerates it being permanently unavailable.
type Enricher interface {
	Available() bool
	Enrich(ctx context.Context, title, content string) (news.Enrichment, error)
}

// Channel is a curated news source
type Channel struct {
	ID     string
	Name   string
	Domain string
	Active bool
}

// Topic is a curated topic with its provider search keywords
type Topic struct {
	ID       string
	Name     string
	Keywords string
}

// SourceCatalog resolves channel ids and topics to provider inputs
type SourceCatalog interface {
	// Topics lists the curated topics
	Topics() []Topic

	// Channels lists the curated channels, active only
	Channels() []Channel

	// ResolveChannels maps followed channel ids to active channels.
	// Unknown or inactive ids are silently dropped.
	ResolveChannels(ids []string) []Channel

	// DefaultDomains returns every active channel domain for the
	// locale, used when a user follows no channels
	DefaultDomains() []string

	// QueryForTopic returns the provider search expression for a
	// topic label, falling back to the label itself
	QueryForTopic(topic string) string
}

// ContentExtractor pulls readable article text from a web page
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (ExtractedContent, error)
}

// ExtractedContent is the result of a page extraction
type ExtractedContent struct {
	Title   string
	Byline  string
	Excerpt string
	Text    string
	Length  int
}

// EventPublisher emits integration events after state changes.
// Publishing is best-effort; failures are logged, never propagated.
type EventPublisher interface {
	PublishNewsletterGenerated(ctx context.Context, newsletter *news.Newsletter) error
}
