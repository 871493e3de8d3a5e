package annotate

import (
	"context"
	"errors"
	"time"

	"github.com/bkmekonnen/vigil/internal/model"
)

// annotateSleepFunc is the sleep function used between retries (injectable for tests)
var annotateSleepFunc = time.Sleep

// retryingProvider retries transient annotation failures with exponential
// backoff. Only ErrUnavailable is retried; schema and parse errors fail fast.
type retryingProvider struct {
	inner      Provider
	maxRetries int
}

// WithRetry wraps a provider with bounded retry on transient failures.
func WithRetry(p Provider, maxRetries int) Provider {
	if maxRetries <= 0 {
		return p
	}
	return &retryingProvider{inner: p, maxRetries: maxRetries}
}

func (r *retryingProvider) Name() string { return r.inner.Name() }

func (r *retryingProvider) IsAvailable(ctx context.Context) bool {
	return r.inner.IsAvailable(ctx)
}

func (r *retryingProvider) Annotate(ctx context.Context, article model.Article) (*model.ArticleContext, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		result, err := r.inner.Annotate(ctx, article)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !errors.Is(err, ErrUnavailable) || ctx.Err() != nil {
			return nil, err
		}
		if attempt < r.maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			annotateSleepFunc(backoff)
		}
	}
	return nil, lastErr
}
