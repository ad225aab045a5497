package graph

import (
	"context"
	"fmt"

	"artmarket-gateway/internal/gravity"
	"artmarket-gateway/internal/logger"
	"artmarket-gateway/internal/pagination"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

func (r *Resolver) queryArtist(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	a, err := r.Gravity.Artist(p.Context, id)
	if err != nil {
		return nil, err
	}
	return mapArtist(a), nil
}

func (r *Resolver) queryArtwork(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	a, err := r.Gravity.Artwork(p.Context, id)
	if err != nil {
		return nil, err
	}
	return mapArtwork(a), nil
}

func (r *Resolver) artworkArtist(p graphql.ResolveParams) (interface{}, error) {
	aw, ok := p.Source.(*Artwork)
	if !ok || aw.ArtistID == "" {
		return nil, nil
	}
	a, err := r.Gravity.Artist(p.Context, aw.ArtistID)
	if err != nil {
		return nil, err
	}
	return mapArtist(a), nil
}

// artworkViewCount uses the count loaded with the page when there is one.
func (r *Resolver) artworkViewCount(p graphql.ResolveParams) (interface{}, error) {
	aw, ok := p.Source.(*Artwork)
	if !ok {
		return 0, nil
	}
	if aw.viewsLoaded {
		return aw.ViewCount, nil
	}
	counts, err := r.Analytics.ViewCounts(p.Context, []string{aw.ID})
	if err != nil {
		return nil, err
	}
	return counts[aw.ID], nil
}

// artistArtworks is the single-source artworks connection with page
// cursors. It accepts both relay and page/size arguments.
func (r *Resolver) artistArtworks(p graphql.ResolveParams) (interface{}, error) {
	artist, ok := p.Source.(*Artist)
	if !ok {
		return nil, fmt.Errorf("artworksConnection: unexpected source %T", p.Source)
	}
	args, err := connectionArgs(p)
	if err != nil {
		return nil, err
	}
	params, err := pagination.ConvertConnectionArgs(args, defaultPageSize)
	if err != nil {
		return nil, err
	}

	fetch := pagination.FetcherFunc[*Artwork](func(ctx context.Context, fa pagination.FetchArgs) (pagination.FetchResult[*Artwork], error) {
		list, total, err := r.Gravity.ArtistArtworks(ctx, artist.ID, gravity.ListOptions{
			Size: fa.Limit, Offset: fa.Offset, Sort: fa.Sort,
		})
		if err != nil {
			return pagination.FetchResult[*Artwork]{}, err
		}
		return pagination.FetchResult[*Artwork]{Nodes: mapArtworks(list), TotalCount: total}, nil
	})

	res, err := decorate[*Artwork](r, "artworks", "artist:"+artist.ID+":artworks", fetch).
		Fetch(p.Context, pagination.FetchArgs{Limit: params.Size, Offset: params.Offset, Sort: args.Sort})
	if err != nil {
		return nil, err
	}

	return pagination.PaginationResolver(pagination.PaginationInput[*Artwork]{
		TotalCount: res.TotalCount,
		Offset:     params.Offset,
		Page:       params.Page,
		Size:       params.Size,
		Body:       r.withViewCounts(p.Context, res.Nodes),
		Args:       args,
	})
}

func (r *Resolver) artistRelatedContent(p graphql.ResolveParams) (interface{}, error) {
	artist, ok := p.Source.(*Artist)
	if !ok {
		return nil, fmt.Errorf("relatedContentConnection: unexpected source %T", p.Source)
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
		r.relatedContentFetchers(artist.ID), byDate[relatedSource])
}

// withViewCounts returns copies of artworks with their view counts set.
// The input may be shared with the fetch cache and is not modified.
func (r *Resolver) withViewCounts(ctx context.Context, artworks []*Artwork) []*Artwork {
	if len(artworks) == 0 {
		return artworks
	}
	ids := make([]string, len(artworks))
	for i, a := range artworks {
		ids[i] = a.ID
	}

	counts, err := r.Analytics.ViewCounts(ctx, ids)
	if err != nil {
		// counts fall back to the per-field lookup
		logger.FromCtx(ctx).Warn("failed to load view counts", zap.Error(err))
		return artworks
	}

	out := make([]*Artwork, len(artworks))
	for i, a := range artworks {
		c := *a
		c.ViewCount = counts[a.ID]
		c.viewsLoaded = true
		out[i] = &c
	}
	return out
}
