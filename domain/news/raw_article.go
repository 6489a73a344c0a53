package news

import "time"

// RawArticle is an article as returned by a news provider, before
// enrichment and persistence. It is a transport value, not an entity.
type RawArticle struct {
	Title       string
	Description string
	Content     string
	Source      string
	URL         string
	PublishedAt time.Time
}

// BodyText returns the best available text for the article. Providers
// often truncate content; the description is the fallback.
func (r RawArticle) BodyText() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Description
}
