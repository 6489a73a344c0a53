package news

import (
	"time"

	pkgerrors "merculy-backend/pkg/errors"
)

// PersonalizedTopic is the sentinel topic of a multi-topic newsletter
const PersonalizedTopic = "personalized"

// Format selects how a generation request groups articles
type Format string

const (
	// FormatSingle builds one newsletter across all interests
	FormatSingle Format = "single"

	// FormatByTopic builds one newsletter per interest
	FormatByTopic Format = "by_topic"
)

// ParseFormat normalizes a format selector, defaulting to single
func ParseFormat(raw string) Format {
	if raw == string(FormatByTopic) {
		return FormatByTopic
	}
	return FormatSingle
}

// Newsletter is a reference collection: it stores article identifiers
// in presentation order, never article content. Deleting a newsletter
// leaves its referenced articles untouched.
type Newsletter struct {
	id         string
	userID     string
	title      string
	topic      string
	articleIDs []string
	createdAt  time.Time
}

// NewNewsletter creates a newsletter referencing already persisted articles
func NewNewsletter(gen IDGenerator, userID, title, topic string, articleIDs []string) (*Newsletter, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if topic == "" {
		return nil, pkgerrors.NewValidationError("topic cannot be empty")
	}
	if len(articleIDs) == 0 {
		return nil, pkgerrors.NewValidationError("newsletter must reference at least one article")
	}

	now := time.Now()
	return &Newsletter{
		id:         gen.NewsletterID(userID, now),
		userID:     userID,
		title:      title,
		topic:      topic,
		articleIDs: append([]string(nil), articleIDs...),
		createdAt:  now,
	}, nil
}

// ReconstructNewsletter rebuilds a newsletter from repository data
func ReconstructNewsletter(id, userID, title, topic string, articleIDs []string, createdAt time.Time) (*Newsletter, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("newsletter id cannot be empty")
	}
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	return &Newsletter{
		id:         id,
		userID:     userID,
		title:      title,
		topic:      topic,
		articleIDs: append([]string(nil), articleIDs...),
		createdAt:  createdAt,
	}, nil
}

// ID returns the newsletter's identifier
func (n *Newsletter) ID() string { return n.id }

// UserID returns the owning user's identifier
func (n *Newsletter) UserID() string { return n.userID }

// Title returns the newsletter's display title
func (n *Newsletter) Title() string { return n.title }

// Topic returns the topic label, or the personalized sentinel
func (n *Newsletter) Topic() string { return n.topic }

// ArticleIDs returns the referenced article ids in presentation order
func (n *Newsletter) ArticleIDs() []string {
	return append([]string(nil), n.articleIDs...)
}

// ArticleCount returns the number of referenced articles. It is always
// derived from the reference list, never stored separately.
func (n *Newsletter) ArticleCount() int { return len(n.articleIDs) }

// CreatedAt returns the creation timestamp
func (n *Newsletter) CreatedAt() time.Time { return n.createdAt }

// IsPersonalized reports whether this is a multi-topic aggregate
func (n *Newsletter) IsPersonalized() bool { return n.topic == PersonalizedTopic }
