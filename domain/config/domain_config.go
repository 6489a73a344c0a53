package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Allocation constraints
	DefaultArticleLimit  int
	MinArticlesPerTopic  int
	MaxArticlesPerTopic  int
	MaxArticlesPerSource int

	// Newsletter constraints
	MaxInterests        int
	MaxFollowedChannels int
	MaxNewslettersPage  int

	// Locale defaults
	DefaultCountry  string
	DefaultLanguage string

	// Enrichment constraints
	SummaryMaxLines    int
	HighlightCount     int
	MaxContentForModel int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Allocation constraints
		DefaultArticleLimit:  20,
		MinArticlesPerTopic:  1,
		MaxArticlesPerTopic:  2,
		MaxArticlesPerSource: 10,

		// Newsletter constraints
		MaxInterests:        10,
		MaxFollowedChannels: 20,
		MaxNewslettersPage:  50,

		// Locale defaults
		DefaultCountry:  "br",
		DefaultLanguage: "pt",

		// Enrichment constraints
		SummaryMaxLines:    3,
		HighlightCount:     3,
		MaxContentForModel: 4000,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Tighter budgets against provider quotas
	config.DefaultArticleLimit = 15
	config.MaxArticlesPerSource = 5

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.DefaultArticleLimit = 30
	config.MaxNewslettersPage = 100

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
