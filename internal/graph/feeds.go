package graph

import (
	"cmp"
	"context"
	"slices"

	"artmarket-gateway/internal/cms"
	"artmarket-gateway/internal/exchange"
	"artmarket-gateway/internal/gravity"
	"artmarket-gateway/internal/pagination"
)

// Sources of the merged feeds.
type relatedSource string

const (
	sourceArticles relatedSource = "articles"
	sourceShows    relatedSource = "shows"
)

type activitySource string

const (
	sourceOrders    activitySource = "orders"
	sourceInquiries activitySource = "inquiries"
)

// byDate orders a merged page by node date in the requested direction
// (newest first unless ASC). Ties go to the source with the lower key and,
// within one source, keep fetch order: every source must be consumed as a
// prefix of its own list for cursors to resume correctly.
func byDate[K ~string](args pagination.ConnectionArgs, nodes []pagination.SourcedNode[K, datedNode]) []pagination.SourcedNode[K, datedNode] {
	sorted := slices.Clone(nodes)
	asc := args.Sort == "ASC"
	slices.SortStableFunc(sorted, func(a, b pagination.SourcedNode[K, datedNode]) int {
		c := a.Node.Date().Compare(b.Node.Date())
		if !asc {
			c = -c
		}
		return cmp.Or(c, cmp.Compare(a.Source, b.Source))
	})
	return sorted
}

func (r *Resolver) relatedContentFetchers(artistID string) map[relatedSource]pagination.Fetcher[datedNode] {
	articles := pagination.FetcherFunc[datedNode](func(ctx context.Context, args pagination.FetchArgs) (pagination.FetchResult[datedNode], error) {
		list, total, err := r.Articles.ArtistArticles(ctx, artistID, cms.ListOptions{
			Size: args.Limit, Offset: args.Offset, Sort: args.Sort,
		})
		if err != nil {
			return pagination.FetchResult[datedNode]{}, err
		}
		nodes := make([]datedNode, 0, len(list))
		for _, a := range list {
			nodes = append(nodes, mapArticle(a))
		}
		return pagination.FetchResult[datedNode]{Nodes: nodes, TotalCount: total}, nil
	})

	shows := pagination.FetcherFunc[datedNode](func(ctx context.Context, args pagination.FetchArgs) (pagination.FetchResult[datedNode], error) {
		list, total, err := r.Gravity.ArtistShows(ctx, artistID, gravity.ListOptions{
			Size: args.Limit, Offset: args.Offset, Sort: args.Sort,
		})
		if err != nil {
			return pagination.FetchResult[datedNode]{}, err
		}
		nodes := make([]datedNode, 0, len(list))
		for _, s := range list {
			nodes = append(nodes, mapShow(s))
		}
		return pagination.FetchResult[datedNode]{Nodes: nodes, TotalCount: total}, nil
	})

	return map[relatedSource]pagination.Fetcher[datedNode]{
		sourceArticles: decorate[datedNode](r, string(sourceArticles), "artist:"+artistID+":articles", articles),
		sourceShows:    decorate[datedNode](r, string(sourceShows), "artist:"+artistID+":shows", shows),
	}
}

// activityFetchers are per collector and never cached.
func (r *Resolver) activityFetchers(userID string) map[activitySource]pagination.Fetcher[datedNode] {
	orders := pagination.FetcherFunc[datedNode](func(ctx context.Context, args pagination.FetchArgs) (pagination.FetchResult[datedNode], error) {
		list, total, err := r.Exchange.Orders(ctx, userID, exchange.ListOptions{
			Size: args.Limit, Offset: args.Offset, Sort: args.Sort,
		})
		if err != nil {
			return pagination.FetchResult[datedNode]{}, err
		}
		nodes := make([]datedNode, 0, len(list))
		for _, o := range list {
			nodes = append(nodes, mapOrder(o))
		}
		return pagination.FetchResult[datedNode]{Nodes: nodes, TotalCount: total}, nil
	})

	inquiries := pagination.FetcherFunc[datedNode](func(ctx context.Context, args pagination.FetchArgs) (pagination.FetchResult[datedNode], error) {
		list, total, err := r.Gravity.InquiryRequests(ctx, userID, gravity.ListOptions{
			Size: args.Limit, Offset: args.Offset, Sort: args.Sort,
		})
		if err != nil {
			return pagination.FetchResult[datedNode]{}, err
		}
		nodes := make([]datedNode, 0, len(list))
		for _, i := range list {
			nodes = append(nodes, mapInquiry(i))
		}
		return pagination.FetchResult[datedNode]{Nodes: nodes, TotalCount: total}, nil
	})

	return map[activitySource]pagination.Fetcher[datedNode]{
		sourceOrders:    decorate[datedNode](r, string(sourceOrders), "", orders),
		sourceInquiries: decorate[datedNode](r, string(sourceInquiries), "", inquiries),
	}
}
