package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	IndexName     string // GSI1 - email and article id lookups
	GSI2IndexName string // GSI2 - oauth identity lookups
	EventBusName  string

	// External services
	NewsAPIKey    string
	NewsAPIURL    string
	GeminiAPIKey  string
	GeminiAPIURL  string
	NewsCountry   string
	NewsLanguage  string
	CatalogPath   string
	EnableScraper bool

	// Cache
	RedisAddr     string
	RedisPassword string
	CacheTTLSecs  int

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "merculy")),
		IndexName:     getEnv("INDEX_NAME", "LookupIndex"),     // GSI1
		GSI2IndexName: getEnv("GSI2_INDEX_NAME", "OAuthIndex"), // GSI2
		EventBusName:  getEnv("EVENT_BUS_NAME", "merculy-events"),

		// External services
		NewsAPIKey:    getEnv("NEWS_API_KEY", ""),
		NewsAPIURL:    getEnv("NEWS_API_URL", "https://newsapi.org/v2"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:  getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		NewsCountry:   getEnv("NEWS_COUNTRY", "br"),
		NewsLanguage:  getEnv("NEWS_LANGUAGE", "pt"),
		CatalogPath:   getEnv("CATALOG_PATH", "catalog.yaml"),
		EnableScraper: getEnvBool("ENABLE_SCRAPER", true),

		// Cache
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTLSecs:  getEnvInt("CACHE_TTL_SECONDS", 300),

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "merculy-backend"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
		if c.NewsAPIKey == "" {
			return fmt.Errorf("NEWS_API_KEY is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
