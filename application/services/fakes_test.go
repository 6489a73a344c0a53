package services

import (
	"context"
	"sort"
	"sync"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
	pkgerrors "merculy-backend/pkg/errors"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		repo.users[u.ID()] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByOAuth(_ context.Context, provider, subject string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.OAuthProvider() == provider && u.OAuthSubject() == subject {
			return u, nil
		}
	}
	return nil, nil
}

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles map[string]*news.Article
	loseAll  bool // simulate a store that forgets everything it was given
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]*news.Article)}
}

func (r *fakeArticleRepo) Create(_ context.Context, a *news.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loseAll {
		r.articles[a.ID()] = a
	}
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*news.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("article")
	}
	return a, nil
}

func (r *fakeArticleRepo) FindByTopicAndURL(_ context.Context, topic, url string) (*news.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Topic() == topic && a.URL() == url {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeArticleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.articles)
}

type fakeNewsletterRepo struct {
	mu          sync.Mutex
	newsletters map[string]*news.Newsletter
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{newsletters: make(map[string]*news.Newsletter)}
}

func (r *fakeNewsletterRepo) Create(_ context.Context, n *news.Newsletter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.newsletters[n.ID()] = n
	return nil
}

func (r *fakeNewsletterRepo) GetByID(_ context.Context, userID, id string) (*news.Newsletter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.newsletters[id]
	if !ok || n.UserID() != userID {
		return nil, pkgerrors.NewNotFoundError("newsletter")
	}
	return n, nil
}

func (r *fakeNewsletterRepo) DeleteByID(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.newsletters[id]
	if !ok || n.UserID() != userID {
		return pkgerrors.NewNotFoundError("newsletter")
	}
	delete(r.newsletters, id)
	return nil
}

func (r *fakeNewsletterRepo) ListByUser(_ context.Context, userID, topicFilter string, page, pageSize int) ([]*news.Newsletter, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*news.Newsletter, 0)
	for _, n := range r.newsletters {
		if n.UserID() != userID {
			continue
		}
		if topicFilter != "" && n.Topic() != topicFilter {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})

	total := len(out)
	start := (page - 1) * pageSize
	if start >= total {
		return []*news.Newsletter{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (r *fakeNewsletterRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.newsletters)
}

// fakeProvider serves canned articles keyed by query, optionally
// failing for specific domains
type fakeProvider struct {
	byQuery     map[string][]news.RawArticle
	failDomains map[string]error
	calls       []ports.FetchRequest
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		byQuery:     make(map[string][]news.RawArticle),
		failDomains: make(map[string]error),
	}
}

func (p *fakeProvider) Fetch(_ context.Context, req ports.FetchRequest) ([]news.RawArticle, error) {
	p.calls = append(p.calls, req)
	if err, ok := p.failDomains[req.Domain]; ok {
		return nil, err
	}
	raws := p.byQuery[req.Query]
	if req.Limit < len(raws) {
		raws = raws[:req.Limit]
	}
	return raws, nil
}

type fakeEnricher struct {
	available bool
	err       error
	bias      news.Bias
}

func (e *fakeEnricher) Available() bool { return e.available }

func (e *fakeEnricher) Enrich(_ context.Context, title, _ string) (news.Enrichment, error) {
	if e.err != nil {
		return news.Enrichment{}, e.err
	}
	bias := e.bias
	if bias == "" {
		bias = news.BiasCenter
	}
	return news.Enrichment{
		Summary: "Resumo de " + title,
		Highlights: []string{
			"• Primeiro destaque",
			"• Segundo destaque",
			"• Terceiro destaque",
		},
		Bias: bias,
	}, nil
}

// fakeExtractor serves canned page text keyed by URL
type fakeExtractor struct {
	byURL map[string]string
	err   error
	calls []string
}

func (e *fakeExtractor) Extract(_ context.Context, url string) (ports.ExtractedContent, error) {
	e.calls = append(e.calls, url)
	if e.err != nil {
		return ports.ExtractedContent{}, e.err
	}
	text := e.byURL[url]
	return ports.ExtractedContent{Text: text, Length: len(text)}, nil
}

type fakeCatalog struct {
	channels map[string]ports.Channel
	defaults []string
	queries  map[string]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		channels: make(map[string]ports.Channel),
		queries:  make(map[string]string),
	}
}

func (c *fakeCatalog) Topics() []ports.Topic {
	out := make([]ports.Topic, 0, len(c.queries))
	for id, q := range c.queries {
		out = append(out, ports.Topic{ID: id, Name: id, Keywords: q})
	}
	return out
}

func (c *fakeCatalog) Channels() []ports.Channel {
	out := make([]ports.Channel, 0, len(c.channels))
	for _, ch := range c.channels {
		if ch.Active {
			out = append(out, ch)
		}
	}
	return out
}

func (c *fakeCatalog) ResolveChannels(ids []string) []ports.Channel {
	out := make([]ports.Channel, 0, len(ids))
	for _, id := range ids {
		ch, ok := c.channels[id]
		if ok && ch.Active {
			out = append(out, ch)
		}
	}
	return out
}

func (c *fakeCatalog) DefaultDomains() []string { return c.defaults }

func (c *fakeCatalog) QueryForTopic(topic string) string {
	if q, ok := c.queries[topic]; ok {
		return q
	}
	return topic
}

type fakePublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (p *fakePublisher) PublishNewsletterGenerated(_ context.Context, n *news.Newsletter) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n.ID())
	return nil
}
