package pagination

import (
	"context"
	"errors"
	"time"

	"artmarket-gateway/internal/logger"
	"artmarket-gateway/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// permanent is implemented by errors that a retry can not fix.
type permanent interface {
	Permanent() bool
}

func isPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p) && p.Permanent()
}

// WithRetry retries failed fetches with exponential backoff starting at
// initialWait. Permanent errors and context cancellation are returned
// immediately.
func WithRetry[T any](f Fetcher[T], maxRetries int, initialWait time.Duration) Fetcher[T] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if initialWait <= 0 {
		initialWait = 100 * time.Millisecond
	}
	return FetcherFunc[T](func(ctx context.Context, args FetchArgs) (FetchResult[T], error) {
		var lastErr error
		wait := initialWait

		for attempt := 0; attempt <= maxRetries; attempt++ {
			res, err := f.Fetch(ctx, args)
			if err == nil {
				return res, nil
			}
			lastErr = err

			if ctx.Err() != nil {
				return FetchResult[T]{}, ctx.Err()
			}
			if isPermanent(err) || attempt == maxRetries {
				break
			}

			logger.FromCtx(ctx).Debug("retrying fetch",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(err),
			)

			select {
			case <-ctx.Done():
				return FetchResult[T]{}, ctx.Err()
			case <-time.After(wait):
				wait *= 2
			}
		}
		return FetchResult[T]{}, lastErr
	})
}

// WithRateLimit waits for a token from limiter before each fetch.
func WithRateLimit[T any](f Fetcher[T], limiter *rate.Limiter) Fetcher[T] {
	return FetcherFunc[T](func(ctx context.Context, args FetchArgs) (FetchResult[T], error) {
		if err := limiter.Wait(ctx); err != nil {
			return FetchResult[T]{}, err
		}
		return f.Fetch(ctx, args)
	})
}

// WithTimeout bounds every fetch to d.
func WithTimeout[T any](f Fetcher[T], d time.Duration) Fetcher[T] {
	if d <= 0 {
		return f
	}
	return FetcherFunc[T](func(ctx context.Context, args FetchArgs) (FetchResult[T], error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return f.Fetch(ctx, args)
	})
}

// WithCache serves repeated windows of the same source from cache. key
// must identify the source and every filter that shapes its result.
// Failed fetches are not cached.
func WithCache[T any](f Fetcher[T], cache *FetchCache, key string) Fetcher[T] {
	if cache == nil {
		return f
	}
	return FetcherFunc[T](func(ctx context.Context, args FetchArgs) (FetchResult[T], error) {
		k := cacheKey(key, args)
		if v, ok := cache.get(k); ok {
			if res, ok := v.(FetchResult[T]); ok {
				metrics.FetchCacheLookups.WithLabelValues("hit").Inc()
				return res, nil
			}
		}
		metrics.FetchCacheLookups.WithLabelValues("miss").Inc()

		res, err := f.Fetch(ctx, args)
		if err != nil {
			return FetchResult[T]{}, err
		}
		cache.set(k, res)
		return res, nil
	})
}

// WithInstrumentation logs and records metrics for every fetch of source.
func WithInstrumentation[T any](f Fetcher[T], source string) Fetcher[T] {
	return FetcherFunc[T](func(ctx context.Context, args FetchArgs) (FetchResult[T], error) {
		log := logger.FromCtx(ctx).With(
			zap.String("source", source),
			zap.Int("limit", args.Limit),
			zap.Int("offset", args.Offset),
			zap.String("sort", args.Sort),
		)
		timer := metrics.StartTimer()

		res, err := f.Fetch(ctx, args)
		d := timer.ObserveTo(metrics.UpstreamFetchDuration.WithLabelValues(source))

		if err != nil {
			metrics.UpstreamFetches.WithLabelValues(source, "error").Inc()
			log.Error("upstream fetch failed", zap.Error(err), zap.Duration("duration", d))
			return FetchResult[T]{}, err
		}

		metrics.UpstreamFetches.WithLabelValues(source, "ok").Inc()
		log.Debug("upstream fetch done",
			zap.Int("count", len(res.Nodes)),
			zap.Int("total", res.TotalCount),
			zap.Duration("duration", d),
		)
		return res, nil
	})
}
