package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"merculy-backend/domain/news"
)

func newModelServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)

		resp := generateResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content content `json:"content"`
		}{Content: content{Parts: []part{{Text: reply}}}})
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEnrichParsesReply(t *testing.T) {
	reply := `RESUMO:
O governo anunciou um novo pacote econômico.
As medidas valem a partir do próximo mês.

DESTAQUES:
• Pacote corta impostos sobre consumo
• Medidas começam no próximo mês
• Oposição critica o custo fiscal

VIES: centro`

	server := newModelServer(t, reply)
	defer server.Close()

	client := NewClient(server.URL, "test-key", zap.NewNop())
	require.True(t, client.Available())

	enrichment, err := client.Enrich(context.Background(), "Pacote econômico", "texto da matéria")
	require.NoError(t, err)

	assert.Contains(t, enrichment.Summary, "pacote econômico")
	require.Len(t, enrichment.Highlights, 3)
	for _, h := range enrichment.Highlights {
		assert.True(t, len(h) > len(news.HighlightPrefix))
		assert.Equal(t, news.HighlightPrefix, h[:len(news.HighlightPrefix)])
	}
	assert.Equal(t, news.BiasCenter, enrichment.Bias)
}

func TestEnrichNormalizesDashBullets(t *testing.T) {
	reply := `RESUMO:
Resumo curto.

DESTAQUES:
- primeiro
- segundo
- terceiro

VIES: esquerda`

	server := newModelServer(t, reply)
	defer server.Close()

	client := NewClient(server.URL, "test-key", zap.NewNop())
	enrichment, err := client.Enrich(context.Background(), "t", "c")
	require.NoError(t, err)

	assert.Equal(t, []string{"• primeiro", "• segundo", "• terceiro"}, enrichment.Highlights)
	assert.Equal(t, news.BiasLeft, enrichment.Bias)
}

func TestEnrichRejectsIncompleteReply(t *testing.T) {
	server := newModelServer(t, "RESUMO:\nSó resumo, sem destaques.")
	defer server.Close()

	client := NewClient(server.URL, "test-key", zap.NewNop())
	_, err := client.Enrich(context.Background(), "t", "c")
	require.Error(t, err)
}

func TestUnavailableWithoutKey(t *testing.T) {
	client := NewClient("http://localhost", "", zap.NewNop())
	assert.False(t, client.Available())

	_, err := client.Enrich(context.Background(), "t", "c")
	require.Error(t, err)
}
