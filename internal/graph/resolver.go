package graph

import (
	"context"
	"sync"
	"time"

	"artmarket-gateway/internal/analytics"
	"artmarket-gateway/internal/auth"
	"artmarket-gateway/internal/cms"
	"artmarket-gateway/internal/exchange"
	"artmarket-gateway/internal/gravity"
	"artmarket-gateway/internal/pagination"

	"golang.org/x/time/rate"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ArticleStore is the editorial content the related-content feed reads.
type ArticleStore interface {
	ArtistArticles(ctx context.Context, artistID string, opts cms.ListOptions) ([]cms.Article, int, error)
}

// Options tune how upstream sources are called.
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	RetryWait  time.Duration
	// RPS is the per-source request rate. Zero disables limiting.
	RPS float64
}

type Resolver struct {
	Gravity   gravity.Service
	Exchange  exchange.Service
	Articles  ArticleStore
	Analytics analytics.Service
	Cache     *pagination.FetchCache
	Options   Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// limiter returns the shared limiter for source, or nil when limiting is off.
func (r *Resolver) limiter(source string) *rate.Limiter {
	if r.Options.RPS <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limiters == nil {
		r.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := r.limiters[source]
	if !ok {
		l = rate.NewLimiter(rate.Limit(r.Options.RPS), max(1, int(r.Options.RPS)))
		r.limiters[source] = l
	}
	return l
}

// decorate wraps a raw source fetcher with the resilience stack. cacheKey
// must identify everything that shapes the result; empty disables caching.
func decorate[T any](r *Resolver, source, cacheKey string, f pagination.Fetcher[T]) pagination.Fetcher[T] {
	f = pagination.WithTimeout(f, r.Options.Timeout)
	if l := r.limiter(source); l != nil {
		f = pagination.WithRateLimit(f, l)
	}
	if r.Options.MaxRetries > 0 {
		f = pagination.WithRetry(f, r.Options.MaxRetries, r.Options.RetryWait)
	}
	if cacheKey != "" {
		f = pagination.WithCache(f, r.Cache, cacheKey)
	}
	return pagination.WithInstrumentation(f, source)
}

func currentUser(ctx context.Context) (*auth.User, error) {
	u, ok := auth.UserFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return u, nil
}
