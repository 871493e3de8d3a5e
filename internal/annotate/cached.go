package annotate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bkmekonnen/vigil/internal/cache"
	"github.com/bkmekonnen/vigil/internal/model"
)

// cachedProvider serves annotations from a cache, falling back to the inner
// provider on miss. Annotation is by far the slowest pipeline stage, so
// re-running extraction over a corpus should never re-annotate.
type cachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// WithCache wraps a provider with annotation caching keyed on article text.
func WithCache(p Provider, store cache.Cache, ttl time.Duration) Provider {
	if store == nil {
		return p
	}
	return &cachedProvider{inner: p, store: store, ttl: ttl}
}

func (c *cachedProvider) Name() string { return c.inner.Name() }

func (c *cachedProvider) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

func (c *cachedProvider) Annotate(ctx context.Context, article model.Article) (*model.ArticleContext, error) {
	key := cache.AnnotationKey(article.Text)

	if data, found := c.store.Get(key); found {
		var cached model.ArticleContext
		if err := json.Unmarshal(data, &cached); err == nil {
			// Metadata travels with the article, not the cache entry
			cached.ArticleID = article.ID
			cached.Title = article.Title
			cached.DeclaredDate = article.Date
			cached.DeclaredLocation = article.Location
			return &cached, nil
		}
		_ = c.store.Delete(key)
	}

	result, err := c.inner.Annotate(ctx, article)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = c.store.Set(key, data, c.ttl)
	}
	return result, nil
}
