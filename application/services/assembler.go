package services

import (
	"context"

	domaincfg "merculy-backend/domain/config"
	"merculy-backend/domain/news"
	"merculy-backend/domain/news/allocation"
	"merculy-backend/domain/user"

	"merculy-backend/application/ports"
	pkgerrors "merculy-backend/pkg/errors"

	"go.uber.org/zap"
)

// AssembleRequest parameterizes one newsletter-generation run
type AssembleRequest struct {
	// Format overrides the user's preferred format when set
	Format news.Format

	// Limit overrides the default article budget when positive
	Limit int
}

// FetchFailure records one failed provider call. Failures are
// non-fatal; assembly continues with whatever succeeded.
type FetchFailure struct {
	Topic  string
	Domain string
	Err    error
}

// AssembleResult reports everything one generation run produced
type AssembleResult struct {
	Newsletters       []*news.Newsletter
	ArticleCount      int
	DroppedTopics     []string
	FetchFailures     []FetchFailure
	EnrichmentSkipped bool
}

// NewsletterAssembler orchestrates one generation request end to end:
// quota planning, provider fetches, enrichment, article persistence
// and newsletter creation from article references.
type NewsletterAssembler struct {
	users       ports.UserRepository
	articles    ports.ArticleRepository
	newsletters ports.NewsletterRepository
	provider    ports.NewsProvider
	enricher    ports.Enricher
	extractor   ports.ContentExtractor
	catalog     ports.SourceCatalog
	publisher   ports.EventPublisher
	idGen       news.IDGenerator
	cfg         *domaincfg.DomainConfig
	logger      *zap.Logger
}

// NewNewsletterAssembler creates a newsletter assembler
func NewNewsletterAssembler(
	users ports.UserRepository,
	articles ports.ArticleRepository,
	newsletters ports.NewsletterRepository,
	provider ports.NewsProvider,
	enricher ports.Enricher,
	extractor ports.ContentExtractor,
	catalog ports.SourceCatalog,
	publisher ports.EventPublisher,
	idGen news.IDGenerator,
	cfg *domaincfg.DomainConfig,
	logger *zap.Logger,
) *NewsletterAssembler {
	return &NewsletterAssembler{
		users:       users,
		articles:    articles,
		newsletters: newsletters,
		provider:    provider,
		enricher:    enricher,
		extractor:   extractor,
		catalog:     catalog,
		publisher:   publisher,
		idGen:       idGen,
		cfg:         cfg,
		logger:      logger,
	}
}

// topicBatch holds the persisted article ids fetched for one topic,
// in fetch order
type topicBatch struct {
	topic string
	ids   []string
}

// Generate runs one newsletter-generation request for a user
func (s *NewsletterAssembler) Generate(ctx context.Context, userID string, req AssembleRequest) (*AssembleResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !u.HasInterests() {
		return nil, pkgerrors.NewNoInterestsError()
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultArticleLimit
	}

	format := req.Format
	if format == "" {
		format = u.NewsletterFormat()
	}

	domains := s.resolveDomains(u)

	plan := allocation.PlanTopicsWithConfig(
		u.Interests(), limit,
		s.cfg.MinArticlesPerTopic, s.cfg.MaxArticlesPerTopic,
	)
	if len(plan.Dropped) > 0 {
		s.logger.Info("Topics dropped by allocation",
			zap.String("user_id", userID),
			zap.Strings("topics", plan.Dropped),
		)
	}

	result := &AssembleResult{DroppedTopics: plan.Dropped}

	if !s.enricher.Available() {
		result.EnrichmentSkipped = true
		s.logger.Warn("Enrichment backend unavailable, articles will carry no AI fields",
			zap.String("user_id", userID),
		)
	}

	batches := make([]topicBatch, 0, len(plan.Served))
	for _, tq := range plan.Served {
		ids := s.fetchTopic(ctx, tq.Topic, tq.Quota, domains, result)
		result.ArticleCount += len(ids)
		if len(ids) > 0 {
			batches = append(batches, topicBatch{topic: tq.Topic, ids: ids})
		}
	}

	if result.ArticleCount == 0 {
		return nil, pkgerrors.NewNoArticlesError()
	}

	newsletters, err := s.buildNewsletters(ctx, u, format, batches)
	if err != nil {
		return nil, err
	}
	result.Newsletters = newsletters

	for _, n := range newsletters {
		if err := s.publisher.PublishNewsletterGenerated(ctx, n); err != nil {
			s.logger.Warn("Failed to publish newsletter event",
				zap.String("newsletter_id", n.ID()),
				zap.Error(err),
			)
		}
	}

	return result, nil
}

// resolveDomains maps the user's followed channels to source domains,
// falling back to every default-locale domain when none resolve
func (s *NewsletterAssembler) resolveDomains(u *user.User) []string {
	channels := s.catalog.ResolveChannels(u.FollowedChannels())
	if len(channels) == 0 {
		return s.catalog.DefaultDomains()
	}

	domains := make([]string, 0, len(channels))
	for _, ch := range channels {
		domains = append(domains, ch.Domain)
	}
	return domains
}

// fetchTopic fetches, enriches and persists up to quota articles for
// one topic, returning the persisted ids in fetch order
func (s *NewsletterAssembler) fetchTopic(ctx context.Context, topic string, quota int, domains []string, result *AssembleResult) []string {
	query := s.catalog.QueryForTopic(topic)
	seen := make(map[string]struct{})
	ids := make([]string, 0, quota)

	fetchOne := func(domain string, limit int) {
		raws, err := s.provider.Fetch(ctx, ports.FetchRequest{
			Query:  query,
			Domain: domain,
			Limit:  limit,
		})
		if err != nil {
			result.FetchFailures = append(result.FetchFailures, FetchFailure{Topic: topic, Domain: domain, Err: err})
			s.logger.Warn("Fetch failed, continuing with partial results",
				zap.String("topic", topic),
				zap.String("domain", domain),
				zap.Error(err),
			)
			return
		}

		for _, raw := range raws {
			if len(ids) >= quota {
				return
			}
			id, ok := s.persistArticle(ctx, topic, raw, seen, result)
			if ok {
				ids = append(ids, id)
			}
		}
	}

	if len(domains) == 0 {
		fetchOne("", quota)
		return ids
	}

	quotas := allocation.SourceQuotas(quota, len(domains))
	for i, domain := range domains {
		if quotas[i] == 0 {
			continue
		}
		fetchOne(domain, quotas[i])
	}

	return ids
}

// persistArticle dedups, enriches and stores one raw article. The
// dedup key is canonical URL within the topic, checked first against
// this request's batch and then best-effort against the store.
func (s *NewsletterAssembler) persistArticle(ctx context.Context, topic string, raw news.RawArticle, seen map[string]struct{}, result *AssembleResult) (string, bool) {
	if raw.URL == "" {
		return "", false
	}
	if _, dup := seen[raw.URL]; dup {
		return "", false
	}
	seen[raw.URL] = struct{}{}

	existing, err := s.articles.FindByTopicAndURL(ctx, topic, raw.URL)
	if err != nil {
		s.logger.Warn("Dedup lookup failed, persisting anyway",
			zap.String("topic", topic),
			zap.String("url", raw.URL),
			zap.Error(err),
		)
	} else if existing != nil {
		return existing.ID(), true
	}

	if raw.BodyText() == "" && s.extractor != nil {
		extracted, extractErr := s.extractor.Extract(ctx, raw.URL)
		if extractErr != nil {
			s.logger.Warn("Content extraction failed, keeping article without body",
				zap.String("url", raw.URL),
				zap.Error(extractErr),
			)
		} else {
			raw.Content = extracted.Text
		}
	}

	article, err := news.NewArticle(s.idGen, topic, raw)
	if err != nil {
		s.logger.Warn("Skipping invalid article",
			zap.String("topic", topic),
			zap.String("url", raw.URL),
			zap.Error(err),
		)
		return "", false
	}

	if !result.EnrichmentSkipped {
		s.enrichArticle(ctx, article, raw)
	}

	if err := s.articles.Create(ctx, article); err != nil {
		s.logger.Error("Failed to persist article",
			zap.String("topic", topic),
			zap.String("url", raw.URL),
			zap.Error(err),
		)
		return "", false
	}

	return article.ID(), true
}

// enrichArticle attaches AI fields when the backend cooperates.
// Any failure leaves the article without AI fields.
func (s *NewsletterAssembler) enrichArticle(ctx context.Context, article *news.Article, raw news.RawArticle) {
	content := raw.BodyText()
	if len(content) > s.cfg.MaxContentForModel {
		content = content[:s.cfg.MaxContentForModel]
	}

	enrichment, err := s.enricher.Enrich(ctx, raw.Title, content)
	if err != nil {
		s.logger.Warn("Enrichment failed, persisting article without AI fields",
			zap.String("url", raw.URL),
			zap.Error(err),
		)
		return
	}

	if err := article.ApplyEnrichment(enrichment); err != nil {
		s.logger.Warn("Enrichment output rejected",
			zap.String("url", raw.URL),
			zap.Error(err),
		)
	}
}

// buildNewsletters persists the newsletter document(s) for the run:
// one per topic for by_topic, one personalized aggregate for single
func (s *NewsletterAssembler) buildNewsletters(ctx context.Context, u *user.User, format news.Format, batches []topicBatch) ([]*news.Newsletter, error) {
	if format == news.FormatByTopic {
		newsletters := make([]*news.Newsletter, 0, len(batches))
		for _, batch := range batches {
			n, err := s.createNewsletter(ctx, u.ID(), "Newsletter: "+batch.topic, batch.topic, batch.ids)
			if err != nil {
				return nil, err
			}
			newsletters = append(newsletters, n)
		}
		return newsletters, nil
	}

	all := make([]string, 0)
	for _, batch := range batches {
		all = append(all, batch.ids...)
	}

	n, err := s.createNewsletter(ctx, u.ID(), "Sua Newsletter Personalizada", news.PersonalizedTopic, all)
	if err != nil {
		return nil, err
	}
	return []*news.Newsletter{n}, nil
}

// createNewsletter verifies reference integrity and persists one
// newsletter document
func (s *NewsletterAssembler) createNewsletter(ctx context.Context, userID, title, topic string, articleIDs []string) (*news.Newsletter, error) {
	if err := s.verifyReferences(ctx, articleIDs); err != nil {
		return nil, err
	}

	newsletter, err := news.NewNewsletter(s.idGen, userID, title, topic, articleIDs)
	if err != nil {
		return nil, err
	}

	if err := s.newsletters.Create(ctx, newsletter); err != nil {
		return nil, err
	}

	s.logger.Info("Newsletter created",
		zap.String("newsletter_id", newsletter.ID()),
		zap.String("user_id", userID),
		zap.String("topic", topic),
		zap.Int("article_count", newsletter.ArticleCount()),
	)

	return newsletter, nil
}

// verifyReferences asserts every referenced article resolves in the
// store before the newsletter is persisted. A failure here means an
// assembler bug, never a user error.
func (s *NewsletterAssembler) verifyReferences(ctx context.Context, articleIDs []string) error {
	for _, id := range articleIDs {
		article, err := s.articles.GetByID(ctx, id)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				return pkgerrors.NewReferenceIntegrityError(id)
			}
			return err
		}
		if article == nil {
			return pkgerrors.NewReferenceIntegrityError(id)
		}
	}
	return nil
}
