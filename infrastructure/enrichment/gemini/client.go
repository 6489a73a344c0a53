// Package gemini implements the Enricher port against the Gemini
// generateContent API. The client degrades to unavailable when no API
// key is configured; callers persist articles without AI fields then.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"merculy-backend/domain/news"
	pkgerrors "merculy-backend/pkg/errors"
)

const (
	defaultTimeout = 30 * time.Second
	modelName      = "gemini-1.5-flash"
)

// Client calls the Gemini REST interface
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a Gemini client. baseURL points at the API root,
// e.g. https://generativelanguage.googleapis.com/v1beta.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Available reports whether enrichment can be attempted
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enrich summarizes an article and classifies its political bias.
// The model answers in a fixed line-oriented format that parseReply
// decodes; a reply that misses required sections is an error and the
// caller persists the article without AI fields.
func (c *Client) Enrich(ctx context.Context, title, articleContent string) (news.Enrichment, error) {
	if !c.Available() {
		return news.Enrichment{}, pkgerrors.NewEnrichmentUnavailableError()
	}

	reply, err := c.generate(ctx, buildPrompt(title, articleContent))
	if err != nil {
		return news.Enrichment{}, err
	}

	enrichment, err := parseReply(reply)
	if err != nil {
		c.logger.Warn("Unparseable model reply",
			zap.Error(err),
			zap.String("title", title),
		)
		return news.Enrichment{}, err
	}

	return enrichment, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, modelName, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.NewExternalError("gemini", err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", pkgerrors.NewExternalError("gemini", fmt.Errorf("decode response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		msg := "request failed"
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", pkgerrors.NewExternalError("gemini", fmt.Errorf("status %d: %s", resp.StatusCode, msg))
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", pkgerrors.NewExternalError("gemini", fmt.Errorf("empty candidate list"))
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(title, articleContent string) string {
	var b strings.Builder
	b.WriteString("Analise a notícia abaixo e responda em português, exatamente neste formato:\n\n")
	b.WriteString("RESUMO:\n<resumo em no máximo 3 linhas>\n\n")
	b.WriteString("DESTAQUES:\n• <primeiro destaque>\n• <segundo destaque>\n• <terceiro destaque>\n\n")
	b.WriteString("VIES: <esquerda, centro ou direita>\n\n")
	b.WriteString("TÍTULO: ")
	b.WriteString(title)
	b.WriteString("\n\nTEXTO:\n")
	b.WriteString(articleContent)
	return b.String()
}

// parseReply extracts the summary, exactly three bullet highlights and
// the bias label from the model's line-oriented answer
func parseReply(reply string) (news.Enrichment, error) {
	var (
		summaryLines []string
		highlights   []string
		bias         = news.BiasUnknown
		section      string
	)

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(strings.ToUpper(line), "RESUMO:"):
			section = "summary"
			if rest := strings.TrimSpace(line[len("RESUMO:"):]); rest != "" {
				summaryLines = append(summaryLines, rest)
			}
		case strings.HasPrefix(strings.ToUpper(line), "DESTAQUES:"):
			section = "highlights"
		case strings.HasPrefix(strings.ToUpper(line), "VIES:") || strings.HasPrefix(strings.ToUpper(line), "VIÉS:"):
			section = ""
			label := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			bias = news.ParseBias(label)
		case strings.HasPrefix(line, news.HighlightPrefix):
			highlights = append(highlights, line)
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			highlights = append(highlights, news.HighlightPrefix+strings.TrimSpace(line[2:]))
		case section == "summary" && len(summaryLines) < 3:
			summaryLines = append(summaryLines, line)
		}
	}

	if len(summaryLines) == 0 {
		return news.Enrichment{}, fmt.Errorf("reply missing summary section")
	}
	if len(highlights) < news.HighlightCount {
		return news.Enrichment{}, fmt.Errorf("reply has %d highlights, want %d", len(highlights), news.HighlightCount)
	}

	return news.Enrichment{
		Summary:    strings.Join(summaryLines, "\n"),
		Highlights: highlights[:news.HighlightCount],
		Bias:       bias,
	}, nil
}
