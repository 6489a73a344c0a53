package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
	pkgerrors "merculy-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository using DynamoDB.
// GSI1 indexes accounts by email, GSI2 by oauth identity.
type UserRepository struct {
	client         *dynamodb.Client
	tableName      string
	indexName      string
	oauthIndexName string
	logger         *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName, indexName, oauthIndexName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:         client,
		tableName:      tableName,
		indexName:      indexName,
		oauthIndexName: oauthIndexName,
		logger:         logger,
	}
}

// userItem represents the DynamoDB item structure for a user account
type userItem struct {
	PK               string   `dynamodbav:"PK"`
	SK               string   `dynamodbav:"SK"`
	GSI1PK           string   `dynamodbav:"GSI1PK"`
	GSI1SK           string   `dynamodbav:"GSI1SK"`
	GSI2PK           string   `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK           string   `dynamodbav:"GSI2SK,omitempty"`
	EntityType       string   `dynamodbav:"EntityType"`
	UserID           string   `dynamodbav:"UserID"`
	Email            string   `dynamodbav:"Email"`
	Name             string   `dynamodbav:"Name"`
	PasswordHash     string   `dynamodbav:"PasswordHash,omitempty"`
	OAuthProvider    string   `dynamodbav:"OAuthProvider,omitempty"`
	OAuthSubject     string   `dynamodbav:"OAuthSubject,omitempty"`
	Interests        []string `dynamodbav:"Interests,omitempty"`
	FollowedChannels []string `dynamodbav:"FollowedChannels,omitempty"`
	NewsletterFormat string   `dynamodbav:"NewsletterFormat"`
	DeliveryTime     string   `dynamodbav:"DeliveryTime"`
	DeliveryDays     []string `dynamodbav:"DeliveryDays,omitempty"`
	CreatedAt        string   `dynamodbav:"CreatedAt"`
	UpdatedAt        string   `dynamodbav:"UpdatedAt"`
}

func userToItem(u *user.User) userItem {
	item := userItem{
		PK:               fmt.Sprintf("USER#%s", u.ID()),
		SK:               "PROFILE",
		GSI1PK:           fmt.Sprintf("EMAIL#%s", u.Email()),
		GSI1SK:           "PROFILE",
		EntityType:       "USER",
		UserID:           u.ID(),
		Email:            u.Email(),
		Name:             u.Name(),
		PasswordHash:     u.PasswordHash(),
		OAuthProvider:    u.OAuthProvider(),
		OAuthSubject:     u.OAuthSubject(),
		Interests:        u.Interests(),
		FollowedChannels: u.FollowedChannels(),
		NewsletterFormat: string(u.NewsletterFormat()),
		DeliveryTime:     u.DeliveryTime(),
		DeliveryDays:     u.DeliveryDays(),
		CreatedAt:        u.CreatedAt().Format(time.RFC3339),
		UpdatedAt:        u.UpdatedAt().Format(time.RFC3339),
	}

	if u.OAuthProvider() != "" && u.OAuthSubject() != "" {
		item.GSI2PK = fmt.Sprintf("OAUTH#%s#%s", u.OAuthProvider(), u.OAuthSubject())
		item.GSI2SK = "PROFILE"
	}

	return item
}

func itemToUser(item userItem) (*user.User, error) {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	updatedAt, err := time.Parse(time.RFC3339, item.UpdatedAt)
	if err != nil {
		updatedAt = createdAt
	}

	return user.ReconstructUser(
		item.UserID,
		item.Name,
		item.Email,
		item.PasswordHash,
		item.OAuthProvider,
		item.OAuthSubject,
		item.Interests,
		item.FollowedChannels,
		news.ParseFormat(item.NewsletterFormat),
		item.DeliveryTime,
		item.DeliveryDays,
		createdAt,
		updatedAt,
	)
}

// Create persists a new user account, failing if the id already exists
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	av, err := attributevalue.MarshalMap(userToItem(u))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal user").WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewConflictError("account already exists")
		}
		r.logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("userID", u.ID()),
		)
		return pkgerrors.NewDatabaseError("create user", err)
	}

	r.logger.Info("User created",
		zap.String("userID", u.ID()),
	)
	return nil
}

// Update persists changes to an existing user account
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	av, err := attributevalue.MarshalMap(userToItem(u))
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal user").WithCause(err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return pkgerrors.NewNotFoundError("user")
		}
		return pkgerrors.NewDatabaseError("update user", err)
	}

	return nil
}

// GetByID retrieves a user account by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal user").WithCause(err)
	}

	return itemToUser(item)
}

// GetByEmail looks up a user account by email via the lookup index.
// Returns nil without error when no account exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.queryOne(ctx, r.indexName, "GSI1PK", fmt.Sprintf("EMAIL#%s", email))
}

// GetByOAuth looks up a user account by oauth identity via the oauth
// index. Returns nil without error when no account exists.
func (r *UserRepository) GetByOAuth(ctx context.Context, provider, subject string) (*user.User, error) {
	return r.queryOne(ctx, r.oauthIndexName, "GSI2PK", fmt.Sprintf("OAUTH#%s#%s", provider, subject))
}

func (r *UserRepository) queryOne(ctx context.Context, indexName, keyAttr, keyValue string) (*user.User, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": keyAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: keyValue},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query user", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal user").WithCause(err)
	}

	return itemToUser(item)
}
