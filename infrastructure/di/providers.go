package di

import (
	"context"
	"time"

	"merculy-backend/application/ports"
	"merculy-backend/application/services"
	domaincfg "merculy-backend/domain/config"
	"merculy-backend/domain/news"
	"merculy-backend/infrastructure/cache"
	"merculy-backend/infrastructure/catalog"
	"merculy-backend/infrastructure/config"
	"merculy-backend/infrastructure/enrichment/gemini"
	"merculy-backend/infrastructure/messaging/eventbridge"
	"merculy-backend/infrastructure/newsapi"
	"merculy-backend/infrastructure/persistence/dynamodb"
	"merculy-backend/infrastructure/scraper"
	"merculy-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	JWTValidator      *auth.JWTValidator
	AuthService       *services.AuthService
	UserService       *services.UserService
	NewsService       *services.NewsService
	NewsletterService *services.NewsletterService
	Assembler         *services.NewsletterAssembler
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideDomainConfig,
	ProvideIDGenerator,
	ProvideArticleRepository,
	ProvideNewsletterRepository,
	ProvideUserRepository,
	ProvideSourceCatalog,
	ProvideRedisClient,
	ProvideNewsProvider,
	ProvideEnricher,
	ProvideContentExtractor,
	ProvideEventPublisher,
	ProvideJWTValidator,
	ProvideJWTGenerator,
	ProvideAuthService,
	ProvideUserService,
	ProvideNewsService,
	ProvideNewsletterService,
	ProvideAssembler,
	wire.Struct(new(Container), "*"),
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideDomainConfig loads content assembly limits for the environment
func ProvideDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	return domaincfg.LoadDomainConfig(cfg.Environment)
}

// ProvideIDGenerator creates the id scheme for articles and newsletters
func ProvideIDGenerator() news.IDGenerator {
	return news.TimestampIDGenerator{}
}

// ProvideArticleRepository creates an article repository
func ProvideArticleRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ArticleRepository {
	return dynamodb.NewArticleRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName, // GSI1 for direct article id lookups
		logger,
	)
}

// ProvideNewsletterRepository creates a newsletter repository
func ProvideNewsletterRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.NewsletterRepository {
	return dynamodb.NewNewsletterRepository(
		client,
		cfg.DynamoDBTable,
		logger,
	)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,     // GSI1 for email lookups
		cfg.GSI2IndexName, // GSI2 for oauth identity lookups
		logger,
	)
}

// ProvideSourceCatalog loads the topic and channel catalog
func ProvideSourceCatalog(cfg *config.Config, logger *zap.Logger) (ports.SourceCatalog, error) {
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("topics", len(c.Topics())),
		zap.Int("channels", len(c.Channels())),
	)
	return c, nil
}

// ProvideRedisClient creates the cache client; nil when no address is
// configured, which disables provider caching
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// ProvideNewsProvider creates the news client behind the cache layer
func ProvideNewsProvider(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) ports.NewsProvider {
	client := newsapi.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, logger)
	ttl := time.Duration(cfg.CacheTTLSecs) * time.Second
	return cache.NewCachedProvider(client, redisClient, ttl, logger)
}

// ProvideEnricher creates the AI enrichment client
func ProvideEnricher(cfg *config.Config, logger *zap.Logger) ports.Enricher {
	return gemini.NewClient(cfg.GeminiAPIURL, cfg.GeminiAPIKey, logger)
}

// ProvideContentExtractor creates the article page scraper
func ProvideContentExtractor(logger *zap.Logger) ports.ContentExtractor {
	return scraper.NewExtractor(logger)
}

// ProvideEventPublisher creates the integration event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(
		client,
		cfg.EventBusName,
		logger,
	)
}

// ProvideJWTValidator creates the access token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideJWTGenerator creates the access token issuer
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		ExpiryTime:    24 * time.Hour,
	})
}

// ProvideAuthService creates the authentication service
func ProvideAuthService(users ports.UserRepository, generator *auth.JWTGenerator, logger *zap.Logger) *services.AuthService {
	return services.NewAuthService(users, generator, logger)
}

// ProvideUserService creates the preference service
func ProvideUserService(users ports.UserRepository, domainCfg *domaincfg.DomainConfig, logger *zap.Logger) *services.UserService {
	return services.NewUserService(users, domainCfg, logger)
}

// ProvideNewsService creates the article and catalog service
func ProvideNewsService(
	articles ports.ArticleRepository,
	sourceCatalog ports.SourceCatalog,
	extractor ports.ContentExtractor,
	logger *zap.Logger,
) *services.NewsService {
	return services.NewNewsService(articles, sourceCatalog, extractor, logger)
}

// ProvideNewsletterService creates the newsletter read service
func ProvideNewsletterService(
	newsletters ports.NewsletterRepository,
	articles ports.ArticleRepository,
	logger *zap.Logger,
) *services.NewsletterService {
	return services.NewNewsletterService(newsletters, articles, logger)
}

// ProvideAssembler creates the newsletter generation pipeline. The
// content extractor backfills empty provider bodies only when the
// scraper surface is enabled.
func ProvideAssembler(
	cfg *config.Config,
	users ports.UserRepository,
	articles ports.ArticleRepository,
	newsletters ports.NewsletterRepository,
	provider ports.NewsProvider,
	enricher ports.Enricher,
	extractor ports.ContentExtractor,
	sourceCatalog ports.SourceCatalog,
	publisher ports.EventPublisher,
	idGen news.IDGenerator,
	domainCfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *services.NewsletterAssembler {
	if !cfg.EnableScraper {
		extractor = nil
	}
	return services.NewNewsletterAssembler(
		users,
		articles,
		newsletters,
		provider,
		enricher,
		extractor,
		sourceCatalog,
		publisher,
		idGen,
		domainCfg,
		logger,
	)
}
