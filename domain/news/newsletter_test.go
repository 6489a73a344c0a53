package news

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNewsletter(t *testing.T) {
	ids := []string{"a_1", "a_2", "a_3"}
	n, err := NewNewsletter(TimestampIDGenerator{}, "user-1", "Sua Newsletter Personalizada", PersonalizedTopic, ids)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(n.ID(), "user-1_"))
	assert.Equal(t, ids, n.ArticleIDs())
	assert.Equal(t, 3, n.ArticleCount())
	assert.True(t, n.IsPersonalized())
}

func TestNewNewsletterRequiresArticles(t *testing.T) {
	_, err := NewNewsletter(TimestampIDGenerator{}, "user-1", "Newsletter: economia", "economia", nil)
	require.Error(t, err)
}

func TestArticleCountTracksReferences(t *testing.T) {
	n, err := ReconstructNewsletter("n1", "user-1", "Newsletter: economia", "economia", []string{"a", "b"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, n.ArticleCount())
	assert.False(t, n.IsPersonalized())

	// Callers cannot mutate the reference list through the getter
	refs := n.ArticleIDs()
	refs[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, n.ArticleIDs())
}

func TestParseFormatDefaultsToSingle(t *testing.T) {
	assert.Equal(t, FormatSingle, ParseFormat("single"))
	assert.Equal(t, FormatByTopic, ParseFormat("by_topic"))
	assert.Equal(t, FormatSingle, ParseFormat(""))
	assert.Equal(t, FormatSingle, ParseFormat("weekly"))
}
