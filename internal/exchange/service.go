package exchange

import (
	"context"

	"artmarket-gateway/internal/upstream"
)

// Service reads the commerce API.
type Service interface {
	Orders(ctx context.Context, buyerID string, opts ListOptions) ([]Order, int, error)
}

type getter interface {
	Get(ctx context.Context, path string, params upstream.Params, out any) (int, error)
}

type service struct {
	client getter
}

func NewService(client *upstream.Client) Service {
	return &service{client: client}
}

func (s *service) Orders(ctx context.Context, buyerID string, opts ListOptions) ([]Order, int, error) {
	sort := "-created_at"
	if opts.Sort == "ASC" {
		sort = "created_at"
	}

	var orders []Order
	total, err := s.client.Get(ctx, "/api/orders", upstream.Params{
		"buyerId":    buyerID,
		"buyerType":  "user",
		"states":     opts.States,
		"size":       opts.Size,
		"offset":     opts.Offset,
		"sort":       sort,
		"totalCount": true,
	}, &orders)
	if err != nil {
		return nil, 0, err
	}
	return orders, upstream.EstimateTotal(total, opts.Offset, opts.Size, len(orders)), nil
}
