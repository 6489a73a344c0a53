package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractReadablePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><head><title>Notícia de teste</title></head>
<body>
<article>
<h1>Notícia de teste</h1>
<p>O primeiro parágrafo da matéria traz o fato principal com detalhes suficientes para extração.</p>
<p>O segundo parágrafo acrescenta contexto e citações de fontes envolvidas no caso noticiado.</p>
<p>O terceiro parágrafo encerra a matéria com os desdobramentos esperados para os próximos dias.</p>
</article>
</body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(zap.NewNop())
	content, err := extractor.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, content.Text, "fato principal")
	assert.Positive(t, content.Length)
}

func TestExtractRejectsBadURL(t *testing.T) {
	extractor := NewExtractor(zap.NewNop())

	_, err := extractor.Extract(context.Background(), "ftp://example.com/file")
	require.Error(t, err)

	_, err = extractor.Extract(context.Background(), "not a url")
	require.Error(t, err)
}

func TestExtractPropagatesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(zap.NewNop())
	_, err := extractor.Extract(context.Background(), server.URL)
	require.Error(t, err)
}
