// Package eventbridge implements the EventPublisher port using AWS
// EventBridge. Downstream delivery pipelines (email, push) subscribe
// to the bus through externally managed rules.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const (
	eventSource             = "merculy.backend"
	newsletterGeneratedType = "newsletter.generated"
)

// Publisher sends integration events to an EventBridge bus
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates an EventBridge publisher
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

type newsletterGeneratedDetail struct {
	NewsletterID string    `json:"newsletter_id"`
	UserID       string    `json:"user_id"`
	Topic        string    `json:"topic"`
	Title        string    `json:"title"`
	ArticleCount int       `json:"article_count"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// PublishNewsletterGenerated emits a newsletter.generated event.
// Callers treat failures as non-fatal; the newsletter is already
// persisted when this runs.
func (p *Publisher) PublishNewsletterGenerated(ctx context.Context, newsletter *news.Newsletter) error {
	detail, err := json.Marshal(newsletterGeneratedDetail{
		NewsletterID: newsletter.ID(),
		UserID:       newsletter.UserID(),
		Topic:        newsletter.Topic(),
		Title:        newsletter.Title(),
		ArticleCount: newsletter.ArticleCount(),
		GeneratedAt:  newsletter.CreatedAt(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event detail: %w", err)
	}

	input := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(newsletterGeneratedType),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(newsletter.CreatedAt()),
			},
		},
	}

	result, err := p.client.PutEvents(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if result.FailedEntryCount > 0 {
		entry := result.Entries[0]
		return fmt.Errorf("event rejected: %s: %s",
			aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
	}

	p.logger.Debug("Newsletter event published",
		zap.String("newsletterID", newsletter.ID()),
		zap.String("eventBus", p.eventBusName),
	)
	return nil
}
