// Package cache adds a Redis read-through layer in front of the news
// provider so repeated generations within the TTL reuse fetched
// articles instead of spending provider quota.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"merculy-backend/application/ports"
	"merculy-backend/domain/news"
)

// CachedProvider decorates a NewsProvider with a Redis cache. A nil
// redis client disables caching and passes every call through.
type CachedProvider struct {
	inner  ports.NewsProvider
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps a provider with a Redis cache
func NewCachedProvider(inner ports.NewsProvider, client *redis.Client, ttl time.Duration, logger *zap.Logger) ports.NewsProvider {
	return &CachedProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(req ports.FetchRequest) string {
	return fmt.Sprintf("news:%s:%s:%s:%d", req.Language, req.Domain, req.Query, req.Limit)
}

// Fetch returns cached articles when present, otherwise delegates to
// the wrapped provider and stores the result. Cache failures never
// fail the fetch.
func (p *CachedProvider) Fetch(ctx context.Context, req ports.FetchRequest) ([]news.RawArticle, error) {
	if p.client == nil {
		return p.inner.Fetch(ctx, req)
	}

	key := cacheKey(req)
	cached, err := p.client.Get(ctx, key).Bytes()
	if err == nil {
		var articles []news.RawArticle
		if err := json.Unmarshal(cached, &articles); err == nil {
			p.logger.Debug("Provider cache hit", zap.String("key", key))
			return articles, nil
		}
		// Stale format, drop and refetch
		p.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		p.logger.Warn("Provider cache read failed", zap.Error(err), zap.String("key", key))
	}

	articles, err := p.inner.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(articles); err == nil {
		if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.logger.Warn("Provider cache write failed", zap.Error(err), zap.String("key", key))
		}
	}

	return articles, nil
}
