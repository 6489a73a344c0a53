package news

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFixture() RawArticle {
	return RawArticle{
		Title:       "Nova descoberta científica",
		Description: "Pesquisadores anunciam avanço",
		Content:     "O texto completo da matéria",
		Source:      "G1",
		URL:         "https://g1.globo.com/ciencia/noticia",
		PublishedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewArticle(t *testing.T) {
	a, err := NewArticle(TimestampIDGenerator{}, "ciência", rawFixture())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.ID(), "ciência_"))
	assert.Equal(t, "ciência", a.Topic())
	assert.Equal(t, "O texto completo da matéria", a.Content())
	assert.False(t, a.IsEnriched())
	assert.Empty(t, a.Summary())
	assert.Nil(t, a.Highlights())
	assert.Equal(t, BiasUnknown, a.PoliticalBias())
}

func TestNewArticleFallsBackToDescription(t *testing.T) {
	raw := rawFixture()
	raw.Content = ""

	a, err := NewArticle(TimestampIDGenerator{}, "ciência", raw)
	require.NoError(t, err)
	assert.Equal(t, raw.Description, a.Content())
}

func TestNewArticleValidation(t *testing.T) {
	raw := rawFixture()

	_, err := NewArticle(TimestampIDGenerator{}, "", raw)
	require.Error(t, err)

	raw.Title = ""
	_, err = NewArticle(TimestampIDGenerator{}, "ciência", raw)
	require.Error(t, err)

	raw = rawFixture()
	raw.URL = ""
	_, err = NewArticle(TimestampIDGenerator{}, "ciência", raw)
	require.Error(t, err)
}

func TestApplyEnrichment(t *testing.T) {
	a, err := NewArticle(TimestampIDGenerator{}, "ciência", rawFixture())
	require.NoError(t, err)

	err = a.ApplyEnrichment(Enrichment{
		Summary:    "Resumo em uma linha.",
		Highlights: []string{"• um", "• dois", "• três"},
		Bias:       BiasCenter,
	})
	require.NoError(t, err)

	assert.True(t, a.IsEnriched())
	assert.Equal(t, BiasCenter, a.PoliticalBias())
	assert.Len(t, a.Highlights(), HighlightCount)
}

func TestApplyEnrichmentRejectsBadHighlights(t *testing.T) {
	a, err := NewArticle(TimestampIDGenerator{}, "ciência", rawFixture())
	require.NoError(t, err)

	err = a.ApplyEnrichment(Enrichment{
		Summary:    "Resumo",
		Highlights: []string{"• um", "• dois"},
	})
	require.Error(t, err)

	err = a.ApplyEnrichment(Enrichment{
		Summary:    "Resumo",
		Highlights: []string{"um", "• dois", "• três"},
	})
	require.Error(t, err)

	assert.False(t, a.IsEnriched())
}

func TestParseBias(t *testing.T) {
	assert.Equal(t, BiasLeft, ParseBias("esquerda"))
	assert.Equal(t, BiasCenter, ParseBias("centro"))
	assert.Equal(t, BiasRight, ParseBias("direita"))
	assert.Equal(t, BiasLeft, ParseBias("left"))
	assert.Equal(t, BiasCenter, ParseBias("Center"))
	assert.Equal(t, BiasRight, ParseBias("right"))
	assert.Equal(t, BiasUnknown, ParseBias("extrema"))
	assert.False(t, BiasUnknown.IsKnown())
}
