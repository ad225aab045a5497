package pagination

import (
	"context"
	"fmt"
	"slices"

	"artmarket-gateway/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchArgs is what a source is asked for: up to Limit nodes starting at
// its own Offset, in the order named by Sort.
type FetchArgs struct {
	Limit  int
	Offset int
	Sort   string
}

// FetchResult is one source page plus that source's own total.
type FetchResult[T any] struct {
	Nodes      []T
	TotalCount int
}

// Fetcher is the only capability the merge requires from an upstream source.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, args FetchArgs) (FetchResult[T], error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, args FetchArgs) (FetchResult[T], error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, args FetchArgs) (FetchResult[T], error) {
	return f(ctx, args)
}

// SourcedNode is a fetched node tagged with the source it came from.
type SourcedNode[K ~string, T any] struct {
	Source K
	Node   T
}

// Transform orders the union of all fetched nodes. It must be pure and a
// total order that is stable across calls, otherwise cursors do not resume
// where they left off.
type Transform[K ~string, T any] func(args ConnectionArgs, nodes []SourcedNode[K, T]) []SourcedNode[K, T]

// FetchHybridConnection merges independently paginated sources into one
// forward-only cursor connection.
//
// Each source is asked, concurrently, for up to First nodes from its own
// resume point. The union is ordered by transform (fetch order when nil),
// per-source offsets are advanced node by node and the sequence is cut at
// First. Usage errors are returned before any fetcher is called. A failing
// fetcher fails the whole page with its error unchanged.
func FetchHybridConnection[K ~string, T any](
	ctx context.Context,
	args ConnectionArgs,
	fetchers map[K]Fetcher[T],
	transform Transform[K, T],
) (*Connection[T], error) {
	if err := validateForwardArgs(args); err != nil {
		return nil, err
	}

	keys, err := sourceKeys(fetchers)
	if err != nil {
		return nil, err
	}

	offsets := EmptyOffsets(keys)
	if args.After != nil && *args.After != "" {
		decoded, err := DecodeOffsets[K](*args.After)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if !decoded.Has(k) {
				return nil, decodeError(*args.After, fmt.Sprintf("no offset for source %q", k), nil)
			}
		}
		offsets = decoded
	}

	first := *args.First
	log := logger.FromCtx(ctx).With(
		zap.String("component", "hybrid_connection"),
		zap.Int("first", first),
		zap.String("sort", args.Sort),
	)

	results := make([]FetchResult[T], len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		fetchArgs := FetchArgs{Limit: first, Offset: offsets.Offset(key), Sort: args.Sort}
		g.Go(func() error {
			res, err := fetchers[key].Fetch(gctx, fetchArgs)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("hybrid fetch failed", zap.Error(err))
		return nil, err
	}

	totalCount := 0
	var merged []SourcedNode[K, T]
	for i, key := range keys {
		totalCount += results[i].TotalCount
		for _, n := range results[i].Nodes {
			merged = append(merged, SourcedNode[K, T]{Source: key, Node: n})
		}
	}

	if transform != nil {
		merged = transform(args, merged)
	}

	page := make([]AnnotatedNode[K, T], 0, min(len(merged), first))
	current := offsets
	for _, n := range merged {
		if len(page) == first {
			break
		}
		current = current.Increment(n.Source)
		page = append(page, AnnotatedNode[K, T]{Node: n.Node, Source: n.Source, Offsets: current})
	}

	log.Debug("hybrid connection built",
		zap.Int("fetched", len(merged)),
		zap.Int("edges", len(page)),
		zap.Int("total_count", totalCount),
	)

	return HybridConnectionFromArraySlice(page, totalCount), nil
}

func validateForwardArgs(args ConnectionArgs) error {
	if args.Before != nil || args.Last != nil {
		return ErrBackwardPagination
	}
	if args.First == nil {
		return ErrFirstRequired
	}
	if *args.First < 0 {
		return ErrNegativeFirst
	}
	return nil
}

func sourceKeys[K ~string, T any](fetchers map[K]Fetcher[T]) ([]K, error) {
	keys := make([]K, 0, len(fetchers))
	for k := range fetchers {
		if string(k) == PositionKey {
			return nil, fmt.Errorf("%w: %q", ErrReservedSourceKey, PositionKey)
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
