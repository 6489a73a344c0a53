package news

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for articles and newsletters.
//
// The timestamp scheme partitions ids by topic (or user) but does not
// guarantee uniqueness under concurrent creation within the same
// nanosecond. Callers needing a hard guarantee should use
// UUIDSuffixIDGenerator.
type IDGenerator interface {
	ArticleID(topic string, createdAt time.Time) string
	NewsletterID(userID string, createdAt time.Time) string
}

// TimestampIDGenerator implements the default {prefix}_{timestamp} scheme
type TimestampIDGenerator struct{}

// ArticleID returns a topic-partitioned article identifier
func (TimestampIDGenerator) ArticleID(topic string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%d", topic, createdAt.UnixNano())
}

// NewsletterID returns a user-partitioned newsletter identifier
func (TimestampIDGenerator) NewsletterID(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%d", userID, createdAt.UnixNano())
}

// UUIDSuffixIDGenerator appends a random suffix to the timestamp scheme,
// making ids collision proof under concurrent creation
type UUIDSuffixIDGenerator struct{}

// ArticleID returns a collision-proof article identifier
func (UUIDSuffixIDGenerator) ArticleID(topic string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%d_%s", topic, createdAt.UnixNano(), shortUUID())
}

// NewsletterID returns a collision-proof newsletter identifier
func (UUIDSuffixIDGenerator) NewsletterID(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%d_%s", userID, createdAt.UnixNano(), shortUUID())
}

func shortUUID() string {
	id := uuid.New().String()
	return id[:8]
}
