package graph

import (
	"errors"
	"fmt"

	"artmarket-gateway/internal/logger"
	"artmarket-gateway/internal/pagination"
	"artmarket-gateway/internal/transport"
	"artmarket-gateway/internal/upstream"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (r *Resolver) queryMe(p graphql.ResolveParams) (interface{}, error) {
	u, err := currentUser(p.Context)
	if err != nil {
		return nil, err
	}
	return &Me{ID: u.ID}, nil
}

func (r *Resolver) meActivity(p graphql.ResolveParams) (interface{}, error) {
	me, ok := p.Source.(*Me)
	if !ok {
		return nil, fmt.Errorf("activityConnection: unexpected source %T", p.Source)
	}
	args, err := connectionArgs(p)
	if err != nil {
		return nil, err
	}
	if args.First == nil {
		n := defaultPageSize
		args.First = &n
	}

	return pagination.FetchHybridConnection(p.Context, args,
		r.activityFetchers(me.ID), byDate[activitySource])
}

// meRecentlyViewed pages through the collector's viewed artworks, newest
// view first.
func (r *Resolver) meRecentlyViewed(p graphql.ResolveParams) (interface{}, error) {
	me, ok := p.Source.(*Me)
	if !ok {
		return nil, fmt.Errorf("recentlyViewedArtworksConnection: unexpected source %T", p.Source)
	}
	args, err := connectionArgs(p)
	if err != nil {
		return nil, err
	}
	params, err := pagination.ConvertConnectionArgs(args, defaultPageSize)
	if err != nil {
		return nil, err
	}

	views, total, err := r.Analytics.RecentlyViewed(p.Context, me.ID, params.Size, params.Offset)
	if err != nil {
		return nil, err
	}

	artworks := make([]*Artwork, len(views))
	g, ctx := errgroup.WithContext(p.Context)
	for i, v := range views {
		g.Go(func() error {
			a, err := r.Gravity.Artwork(ctx, v.ArtworkID)
			if errors.Is(err, upstream.ErrNotFound) {
				logger.FromCtx(ctx).Info("viewed artwork is gone", zap.String("artwork_id", v.ArtworkID))
				a = nil
				err = nil
			}
			if err != nil {
				return err
			}
			aw := mapArtwork(a)
			if aw == nil {
				aw = &Artwork{ID: v.ArtworkID}
			}
			viewedAt := v.LastViewedAt
			aw.LastViewedAt = &viewedAt
			artworks[i] = aw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pagination.PaginationResolver(pagination.PaginationInput[*Artwork]{
		TotalCount: total,
		Offset:     params.Offset,
		Page:       params.Page,
		Size:       params.Size,
		Body:       r.withViewCounts(p.Context, artworks),
		Args:       args,
	})
}

func (r *Resolver) recordArtworkView(p graphql.ResolveParams) (interface{}, error) {
	u, err := currentUser(p.Context)
	if err != nil {
		return nil, err
	}
	artworkID, _ := p.Args["artworkID"].(string)

	if _, err := r.Gravity.Artwork(p.Context, artworkID); err != nil {
		return nil, err
	}

	v, err := r.Analytics.RecordView(p.Context, u.ID, artworkID, transport.UserAgent(p.Context))
	if err != nil {
		return nil, err
	}
	return mapRecordedView(v), nil
}
