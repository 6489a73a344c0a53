package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"merculy-backend/application/ports"
	domaincfg "merculy-backend/domain/config"
	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
	pkgerrors "merculy-backend/pkg/errors"
)

type assemblerFixture struct {
	users       *fakeUserRepo
	articles    *fakeArticleRepo
	newsletters *fakeNewsletterRepo
	provider    *fakeProvider
	enricher    *fakeEnricher
	extractor   *fakeExtractor
	catalog     *fakeCatalog
	publisher   *fakePublisher
	assembler   *NewsletterAssembler
}

func newAssemblerFixture(t *testing.T, u *user.User) *assemblerFixture {
	t.Helper()

	f := &assemblerFixture{
		users:       newFakeUserRepo(u),
		articles:    newFakeArticleRepo(),
		newsletters: newFakeNewsletterRepo(),
		provider:    newFakeProvider(),
		enricher:    &fakeEnricher{available: true},
		extractor:   &fakeExtractor{},
		catalog:     newFakeCatalog(),
		publisher:   &fakePublisher{},
	}

	f.assembler = NewNewsletterAssembler(
		f.users,
		f.articles,
		f.newsletters,
		f.provider,
		f.enricher,
		f.extractor,
		f.catalog,
		f.publisher,
		news.UUIDSuffixIDGenerator{},
		domaincfg.DefaultDomainConfig(),
		zap.NewNop(),
	)
	return f
}

func testUser(t *testing.T, interests ...string) *user.User {
	t.Helper()
	u, err := user.NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, err)
	u.SetInterests(interests)
	return u
}

func rawArticles(topic string, n int) []news.RawArticle {
	out := make([]news.RawArticle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, news.RawArticle{
			Title:       topic + " manchete " + string(rune('A'+i)),
			Content:     "Conteúdo completo sobre " + topic,
			Source:      "G1",
			URL:         "https://g1.globo.com/" + topic + "/" + string(rune('a'+i)),
			PublishedAt: time.Now(),
		})
	}
	return out
}

func TestGenerateNoInterests(t *testing.T) {
	u := testUser(t)
	f := newAssemblerFixture(t, u)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNoInterests(err))
	assert.Nil(t, result)
	assert.Zero(t, f.articles.count())
	assert.Zero(t, f.newsletters.count())
}

func TestGenerateNoArticles(t *testing.T) {
	u := testUser(t, "tecnologia", "economia")
	f := newAssemblerFixture(t, u)
	// Provider has nothing for any query

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNoArticles(err))
	assert.Nil(t, result)
	assert.Zero(t, f.newsletters.count())
}

func TestGenerateSingleFormat(t *testing.T) {
	u := testUser(t, "tecnologia", "economia")
	f := newAssemblerFixture(t, u)
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 2)
	f.provider.byQuery["economia"] = rawArticles("economia", 2)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	require.NoError(t, err)
	require.Len(t, result.Newsletters, 1)

	n := result.Newsletters[0]
	assert.Equal(t, news.PersonalizedTopic, n.Topic())
	assert.True(t, n.IsPersonalized())
	assert.Equal(t, "Sua Newsletter Personalizada", n.Title())
	assert.Equal(t, 4, n.ArticleCount())
	assert.Equal(t, 4, result.ArticleCount)
	assert.Equal(t, 4, f.articles.count())
	assert.Equal(t, 1, f.newsletters.count())

	// Every reference resolves and content is never copied in
	for _, id := range n.ArticleIDs() {
		article, err := f.articles.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.NotEmpty(t, article.Title())
	}

	// Event published for the created newsletter
	assert.Equal(t, []string{n.ID()}, f.publisher.published)
}

func TestGenerateByTopicFormat(t *testing.T) {
	u := testUser(t, "tecnologia", "economia", "esportes")
	f := newAssemblerFixture(t, u)
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 2)
	f.provider.byQuery["economia"] = rawArticles("economia", 1)
	// esportes yields nothing; no newsletter should be created for it

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatByTopic})

	require.NoError(t, err)
	require.Len(t, result.Newsletters, 2)

	byTopic := make(map[string]*news.Newsletter)
	for _, n := range result.Newsletters {
		byTopic[n.Topic()] = n
	}

	require.Contains(t, byTopic, "tecnologia")
	require.Contains(t, byTopic, "economia")
	assert.NotContains(t, byTopic, "esportes")

	assert.Equal(t, "Newsletter: tecnologia", byTopic["tecnologia"].Title())
	assert.Equal(t, 2, byTopic["tecnologia"].ArticleCount())
	assert.Equal(t, 1, byTopic["economia"].ArticleCount())
}

func TestGeneratePartialFetchFailure(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)

	f.catalog.channels["ch-g1"] = ports.Channel{ID: "ch-g1", Name: "G1", Domain: "g1.globo.com", Active: true}
	f.catalog.channels["ch-folha"] = ports.Channel{ID: "ch-folha", Name: "Folha", Domain: "folha.uol.com.br", Active: true}
	u.SetFollowedChannels([]string{"ch-g1", "ch-folha"})

	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 2)
	f.provider.failDomains["folha.uol.com.br"] = errors.New("connection refused")

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	require.NoError(t, err)
	require.Len(t, result.FetchFailures, 1)
	assert.Equal(t, "folha.uol.com.br", result.FetchFailures[0].Domain)
	assert.Equal(t, "tecnologia", result.FetchFailures[0].Topic)
	assert.Positive(t, result.ArticleCount)
}

func TestGenerateInactiveChannelsSilentlyDropped(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)

	f.catalog.channels["ch-dead"] = ports.Channel{ID: "ch-dead", Name: "Extinto", Domain: "extinto.com.br", Active: false}
	f.catalog.defaults = []string{"g1.globo.com"}
	u.SetFollowedChannels([]string{"ch-dead", "ch-unknown"})

	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 1)

	_, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})
	require.NoError(t, err)

	// All followed channels were unusable, so the default-locale
	// domains were used instead
	require.NotEmpty(t, f.provider.calls)
	assert.Equal(t, "g1.globo.com", f.provider.calls[0].Domain)
}

func TestGenerateEnrichmentUnavailable(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)
	f.enricher.available = false
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 1)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	require.NoError(t, err)
	assert.True(t, result.EnrichmentSkipped)

	id := result.Newsletters[0].ArticleIDs()[0]
	article, err := f.articles.GetByID(context.Background(), id)
	require.NoError(t, err)

	// AI fields are absent, not placeholder values
	assert.False(t, article.IsEnriched())
	assert.Empty(t, article.Summary())
	assert.Nil(t, article.Highlights())
	assert.Equal(t, news.BiasUnknown, article.PoliticalBias())
}

func TestGenerateEnrichmentError(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)
	f.enricher.err = errors.New("model overloaded")
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 1)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	// A failing enrichment call never blocks newsletter creation
	require.NoError(t, err)
	id := result.Newsletters[0].ArticleIDs()[0]
	article, err := f.articles.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, article.IsEnriched())
}

func TestGenerateEnrichedFields(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 1)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})
	require.NoError(t, err)

	id := result.Newsletters[0].ArticleIDs()[0]
	article, err := f.articles.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.True(t, article.IsEnriched())
	assert.NotEmpty(t, article.Summary())
	require.Len(t, article.Highlights(), news.HighlightCount)
	for _, h := range article.Highlights() {
		assert.Contains(t, h, news.HighlightPrefix)
	}
	assert.Equal(t, news.BiasCenter, article.PoliticalBias())
}

func TestGenerateBackfillsEmptyContent(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)

	raw := news.RawArticle{
		Title:       "Manchete sem corpo",
		Source:      "G1",
		URL:         "https://g1.globo.com/tecnologia/sem-corpo",
		PublishedAt: time.Now(),
	}
	f.provider.byQuery["tecnologia"] = []news.RawArticle{raw}
	f.extractor.byURL = map[string]string{raw.URL: "Texto extraído da página"}

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})
	require.NoError(t, err)

	id := result.Newsletters[0].ArticleIDs()[0]
	article, err := f.articles.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Texto extraído da página", article.Content())
	assert.Equal(t, []string{raw.URL}, f.extractor.calls)
}

func TestGenerateExtractionFailureIsNonFatal(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)

	raw := news.RawArticle{
		Title:       "Manchete sem corpo",
		Source:      "G1",
		URL:         "https://g1.globo.com/tecnologia/sem-corpo",
		PublishedAt: time.Now(),
	}
	f.provider.byQuery["tecnologia"] = []news.RawArticle{raw}
	f.extractor.err = errors.New("fetch timeout")

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})
	require.NoError(t, err)

	id := result.Newsletters[0].ArticleIDs()[0]
	article, err := f.articles.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, article.Content())
}

func TestGenerateDedupByURL(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)

	dup := rawArticles("tecnologia", 1)[0]
	f.provider.byQuery["tecnologia"] = []news.RawArticle{dup, dup}

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	require.NoError(t, err)
	assert.Equal(t, 1, f.articles.count())
	assert.Equal(t, 1, result.ArticleCount)
}

func TestGenerateReferenceIntegrityChecked(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)
	f.articles.loseAll = true
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 1)

	_, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeReferenceIntegrity))
	assert.Zero(t, f.newsletters.count())
}

func TestGenerateDeleteNewsletterKeepsArticles(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 2)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})
	require.NoError(t, err)

	n := result.Newsletters[0]
	before := f.articles.count()

	require.NoError(t, f.newsletters.DeleteByID(context.Background(), u.ID(), n.ID()))

	assert.Equal(t, before, f.articles.count())
	for _, id := range n.ArticleIDs() {
		_, err := f.articles.GetByID(context.Background(), id)
		assert.NoError(t, err)
	}
}

func TestGeneratePublishFailureIsNonFatal(t *testing.T) {
	u := testUser(t, "tecnologia")
	f := newAssemblerFixture(t, u)
	f.publisher.err = errors.New("event bus down")
	f.provider.byQuery["tecnologia"] = rawArticles("tecnologia", 1)

	result, err := f.assembler.Generate(context.Background(), u.ID(), AssembleRequest{Format: news.FormatSingle})

	require.NoError(t, err)
	assert.Len(t, result.Newsletters, 1)
}
