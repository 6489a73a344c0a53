package news

import (
	"strings"
	"time"

	pkgerrors "merculy-backend/pkg/errors"
)

// HighlightCount is the exact number of bullet highlights enrichment produces
const HighlightCount = 3

// HighlightPrefix is the marker every bullet highlight starts with
const HighlightPrefix = "• "

// Article is an immutable news document. It is created once when first
// fetched for a topic and referenced, never copied, by newsletters.
type Article struct {
	id          string
	title       string
	content     string
	source      string
	url         string
	topic       string
	summary     string
	highlights  []string
	bias        Bias
	publishedAt time.Time
	createdAt   time.Time
}

// NewArticle creates an article from a fetched raw article. The id is
// assigned at construction time from the topic and creation timestamp.
func NewArticle(gen IDGenerator, topic string, raw RawArticle) (*Article, error) {
	if topic == "" {
		return nil, pkgerrors.NewValidationError("topic cannot be empty")
	}
	if raw.Title == "" {
		return nil, pkgerrors.NewValidationError("article title cannot be empty")
	}
	if raw.URL == "" {
		return nil, pkgerrors.NewValidationError("article url cannot be empty")
	}

	now := time.Now()
	return &Article{
		id:          gen.ArticleID(topic, now),
		title:       raw.Title,
		content:     raw.BodyText(),
		source:      raw.Source,
		url:         raw.URL,
		topic:       topic,
		publishedAt: raw.PublishedAt,
		createdAt:   now,
	}, nil
}

// ReconstructArticle rebuilds an article from repository data with
// preserved identity and timestamps
func ReconstructArticle(
	id, title, content, source, url, topic string,
	summary string,
	highlights []string,
	bias Bias,
	publishedAt, createdAt time.Time,
) (*Article, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("article id cannot be empty")
	}
	if topic == "" {
		return nil, pkgerrors.NewValidationError("topic cannot be empty")
	}

	return &Article{
		id:          id,
		title:       title,
		content:     content,
		source:      source,
		url:         url,
		topic:       topic,
		summary:     summary,
		highlights:  highlights,
		bias:        bias,
		publishedAt: publishedAt,
		createdAt:   createdAt,
	}, nil
}

// Enrichment carries the AI-derived fields attached to an article
type Enrichment struct {
	Summary    string
	Highlights []string
	Bias       Bias
}

// ApplyEnrichment attaches AI fields to the article. Highlights must be
// exactly three bullets, each starting with the bullet prefix.
func (a *Article) ApplyEnrichment(e Enrichment) error {
	if len(e.Highlights) != HighlightCount {
		return pkgerrors.NewValidationError("enrichment must carry exactly three highlights")
	}
	for _, h := range e.Highlights {
		if !strings.HasPrefix(h, HighlightPrefix) {
			return pkgerrors.NewValidationError("highlight must start with a bullet marker")
		}
	}

	a.summary = e.Summary
	a.highlights = append([]string(nil), e.Highlights...)
	a.bias = e.Bias
	return nil
}

// IsEnriched reports whether AI fields are present
func (a *Article) IsEnriched() bool {
	return a.summary != "" || len(a.highlights) > 0 || a.bias.IsKnown()
}

// ID returns the article's identifier
func (a *Article) ID() string { return a.id }

// Title returns the article's title
func (a *Article) Title() string { return a.title }

// Content returns the article's full text
func (a *Article) Content() string { return a.content }

// Source returns the name of the publishing source
func (a *Article) Source() string { return a.source }

// URL returns the canonical article URL
func (a *Article) URL() string { return a.url }

// Topic returns the topic label the article was fetched for
func (a *Article) Topic() string { return a.topic }

// Summary returns the AI summary, empty when not enriched
func (a *Article) Summary() string { return a.summary }

// Highlights returns the bullet highlights, nil when not enriched
func (a *Article) Highlights() []string {
	if a.highlights == nil {
		return nil
	}
	return append([]string(nil), a.highlights...)
}

// PoliticalBias returns the bias label, BiasUnknown when not enriched
func (a *Article) PoliticalBias() Bias { return a.bias }

// PublishedAt returns the provider publication timestamp
func (a *Article) PublishedAt() time.Time { return a.publishedAt }

// CreatedAt returns the store creation timestamp
func (a *Article) CreatedAt() time.Time { return a.createdAt }
