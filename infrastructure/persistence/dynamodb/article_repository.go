package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
	pkgerrors "merculy-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ArticleRepository implements ports.ArticleRepository using DynamoDB.
// Articles are topic-partitioned: PK groups a topic, SK addresses one
// article, and GSI1 serves direct lookups by article id.
type ArticleRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.ArticleRepository {
	return &ArticleRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// articleItem represents the DynamoDB item structure for an article
type articleItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	GSI1PK      string   `dynamodbav:"GSI1PK"`
	GSI1SK      string   `dynamodbav:"GSI1SK"`
	EntityType  string   `dynamodbav:"EntityType"`
	ArticleID   string   `dynamodbav:"ArticleID"`
	Title       string   `dynamodbav:"Title"`
	Content     string   `dynamodbav:"Content"`
	Source      string   `dynamodbav:"Source"`
	URL         string   `dynamodbav:"URL"`
	Topic       string   `dynamodbav:"Topic"`
	Summary     string   `dynamodbav:"Summary,omitempty"`
	Highlights  []string `dynamodbav:"Highlights,omitempty"`
	Bias        string   `dynamodbav:"Bias,omitempty"`
	PublishedAt string   `dynamodbav:"PublishedAt"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
}

func articleToItem(a *news.Article) articleItem {
	return articleItem{
		PK:          fmt.Sprintf("TOPIC#%s", a.Topic()),
		SK:          fmt.Sprintf("ARTICLE#%s", a.ID()),
		GSI1PK:      fmt.Sprintf("ARTICLE#%s", a.ID()),
		GSI1SK:      "METADATA",
		EntityType:  "ARTICLE",
		ArticleID:   a.ID(),
		Title:       a.Title(),
		Content:     a.Content(),
		Source:      a.Source(),
		URL:         a.URL(),
		Topic:       a.Topic(),
		Summary:     a.Summary(),
		Highlights:  a.Highlights(),
		Bias:        string(a.PoliticalBias()),
		PublishedAt: a.PublishedAt().Format(time.RFC3339),
		CreatedAt:   a.CreatedAt().Format(time.RFC3339),
	}
}

func itemToArticle(item articleItem) (*news.Article, error) {
	publishedAt, _ := time.Parse(time.RFC3339, item.PublishedAt)
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = publishedAt
	}

	return news.ReconstructArticle(
		item.ArticleID,
		item.Title,
		item.Content,
		item.Source,
		item.URL,
		item.Topic,
		item.Summary,
		item.Highlights,
		news.Bias(item.Bias),
		publishedAt,
		createdAt,
	)
}

// Create persists an article. Articles are immutable, so an existing
// item with the same key is never overwritten.
func (r *ArticleRepository) Create(ctx context.Context, article *news.Article) error {
	av, err := attributevalue.MarshalMap(articleToItem(article))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal article").WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			// Same topic and timestamp collided; the existing article wins
			r.logger.Warn("Article id collision, keeping existing item",
				zap.String("articleID", article.ID()),
			)
			return nil
		}
		r.logger.Error("Failed to save article",
			zap.Error(err),
			zap.String("articleID", article.ID()),
		)
		return pkgerrors.NewDatabaseError("create article", err)
	}

	r.logger.Debug("Article saved",
		zap.String("articleID", article.ID()),
		zap.String("topic", article.Topic()),
	)
	return nil
}

// GetByID retrieves an article by id via the lookup index
func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*news.Article, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("ARTICLE#%s", id)},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get article", err)
	}

	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("article")
	}

	var item articleItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal article").WithCause(err)
	}

	return itemToArticle(item)
}

// FindByTopicAndURL looks up an article by its dedup key within a
// topic partition. Returns nil without error when no match exists.
func (r *ArticleRepository) FindByTopicAndURL(ctx context.Context, topic, url string) (*news.Article, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		FilterExpression:       aws.String("#url = :url"),
		ExpressionAttributeNames: map[string]string{
			"#url": "URL",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":  &types.AttributeValueMemberS{Value: fmt.Sprintf("TOPIC#%s", topic)},
			":sk":  &types.AttributeValueMemberS{Value: "ARTICLE#"},
			":url": &types.AttributeValueMemberS{Value: url},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("find article by url", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var item articleItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal article").WithCause(err)
	}

	return itemToArticle(item)
}
