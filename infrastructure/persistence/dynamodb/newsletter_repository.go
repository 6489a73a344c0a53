package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
	pkgerrors "merculy-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// NewsletterRepository implements ports.NewsletterRepository using
// DynamoDB. Newsletters are user-partitioned, so listing a user's
// history is a single partition query.
type NewsletterRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewNewsletterRepository creates a new NewsletterRepository
func NewNewsletterRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.NewsletterRepository {
	return &NewsletterRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// newsletterItem represents the DynamoDB item structure for a newsletter
type newsletterItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	NewsletterID string   `dynamodbav:"NewsletterID"`
	UserID       string   `dynamodbav:"UserID"`
	Title        string   `dynamodbav:"Title"`
	Topic        string   `dynamodbav:"Topic"`
	ArticleIDs   []string `dynamodbav:"ArticleIDs"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
}

func newsletterToItem(n *news.Newsletter) newsletterItem {
	return newsletterItem{
		PK:           fmt.Sprintf("USER#%s", n.UserID()),
		SK:           fmt.Sprintf("NEWSLETTER#%s", n.ID()),
		EntityType:   "NEWSLETTER",
		NewsletterID: n.ID(),
		UserID:       n.UserID(),
		Title:        n.Title(),
		Topic:        n.Topic(),
		ArticleIDs:   n.ArticleIDs(),
		CreatedAt:    n.CreatedAt().Format(time.RFC3339),
	}
}

func itemToNewsletter(item newsletterItem) (*news.Newsletter, error) {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return news.ReconstructNewsletter(
		item.NewsletterID,
		item.UserID,
		item.Title,
		item.Topic,
		item.ArticleIDs,
		createdAt,
	)
}

// Create persists a newsletter
func (r *NewsletterRepository) Create(ctx context.Context, newsletter *news.Newsletter) error {
	av, err := attributevalue.MarshalMap(newsletterToItem(newsletter))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal newsletter").WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save newsletter",
			zap.Error(err),
			zap.String("newsletterID", newsletter.ID()),
			zap.String("userID", newsletter.UserID()),
		)
		return pkgerrors.NewDatabaseError("create newsletter", err)
	}

	r.logger.Debug("Newsletter saved",
		zap.String("newsletterID", newsletter.ID()),
		zap.Int("articleCount", newsletter.ArticleCount()),
	)
	return nil
}

// GetByID retrieves a newsletter owned by the given user
func (r *NewsletterRepository) GetByID(ctx context.Context, userID, id string) (*news.Newsletter, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("NEWSLETTER#%s", id)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get newsletter", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("newsletter")
	}

	var item newsletterItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal newsletter").WithCause(err)
	}

	return itemToNewsletter(item)
}

// DeleteByID removes a newsletter. Referenced articles are left intact
// since other newsletters may share them.
func (r *NewsletterRepository) DeleteByID(ctx context.Context, userID, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("NEWSLETTER#%s", id)},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewNotFoundError("newsletter")
		}
		return pkgerrors.NewDatabaseError("delete newsletter", err)
	}

	r.logger.Debug("Newsletter deleted",
		zap.String("newsletterID", id),
		zap.String("userID", userID),
	)
	return nil
}

// ListByUser returns one page of the user's newsletters, newest first,
// along with the total count after topic filtering. The topic filter
// applies before pagination so page numbers stay stable per filter.
func (r *NewsletterRepository) ListByUser(ctx context.Context, userID, topicFilter string, page, pageSize int) ([]*news.Newsletter, int, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID))).
		And(expression.Key("SK").BeginsWith("NEWSLETTER#"))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if topicFilter != "" {
		builder = builder.WithFilter(expression.Name("Topic").Equal(expression.Value(topicFilter)))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, 0, pkgerrors.NewInternalError("failed to build newsletter query").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []newsletterItem
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		result, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, pkgerrors.NewDatabaseError("list newsletters", err)
		}

		var pageItems []newsletterItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &pageItems); err != nil {
			return nil, 0, pkgerrors.NewInternalError("failed to unmarshal newsletters").WithCause(err)
		}
		items = append(items, pageItems...)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	total := len(items)
	start := (page - 1) * pageSize
	if start >= total {
		return []*news.Newsletter{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	newsletters := make([]*news.Newsletter, 0, end-start)
	for _, item := range items[start:end] {
		n, err := itemToNewsletter(item)
		if err != nil {
			r.logger.Error("Skipping unreadable newsletter item",
				zap.Error(err),
				zap.String("newsletterID", item.NewsletterID),
			)
			continue
		}
		newsletters = append(newsletters, n)
	}

	return newsletters, total, nil
}
