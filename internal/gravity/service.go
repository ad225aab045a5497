package gravity

import (
	"context"
	"fmt"
	"net/url"

	"artmarket-gateway/internal/upstream"
)

// Service is the subset of the core data API the gateway reads.
type Service interface {
	Artist(ctx context.Context, id string) (*Artist, error)
	Artwork(ctx context.Context, id string) (*Artwork, error)
	ArtistArtworks(ctx context.Context, artistID string, opts ListOptions) ([]Artwork, int, error)
	ArtistShows(ctx context.Context, artistID string, opts ListOptions) ([]Show, int, error)
	InquiryRequests(ctx context.Context, userID string, opts ListOptions) ([]Inquiry, int, error)
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

func (s *service) Artist(ctx context.Context, id string) (*Artist, error) {
	var a Artist
	if _, err := s.client.Get(ctx, "/api/v1/artist/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *service) Artwork(ctx context.Context, id string) (*Artwork, error) {
	var a Artwork
	if _, err := s.client.Get(ctx, "/api/v1/artwork/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *service) ArtistArtworks(ctx context.Context, artistID string, opts ListOptions) ([]Artwork, int, error) {
	var artworks []Artwork
	total, err := s.client.Get(ctx, fmt.Sprintf("/api/v1/artist/%s/artworks", url.PathEscape(artistID)),
		listParams(opts, "created_at"), &artworks)
	if err != nil {
		return nil, 0, err
	}
	return artworks, totalOrLen(total, opts, len(artworks)), nil
}

func (s *service) ArtistShows(ctx context.Context, artistID string, opts ListOptions) ([]Show, int, error) {
	var shows []Show
	total, err := s.client.Get(ctx, fmt.Sprintf("/api/v1/artist/%s/shows", url.PathEscape(artistID)),
		listParams(opts, "start_at"), &shows)
	if err != nil {
		return nil, 0, err
	}
	return shows, totalOrLen(total, opts, len(shows)), nil
}

func (s *service) InquiryRequests(ctx context.Context, userID string, opts ListOptions) ([]Inquiry, int, error) {
	params := listParams(opts, "created_at")
	params["userId"] = userID

	var inquiries []Inquiry
	total, err := s.client.Get(ctx, "/api/v1/me/inquiry_requests", params, &inquiries)
	if err != nil {
		return nil, 0, err
	}
	return inquiries, totalOrLen(total, opts, len(inquiries)), nil
}

func listParams(opts ListOptions, sortField string) upstream.Params {
	return upstream.Params{
		"size":       opts.Size,
		"offset":     opts.Offset,
		"sort":       SortParam(opts.Sort, sortField),
		"totalCount": true,
	}
}

// SortParam maps ASC/DESC on field to the API's sort syntax.
func SortParam(direction, field string) string {
	if direction == "ASC" {
		return field
	}
	return "-" + field
}

func totalOrLen(total int, opts ListOptions, n int) int {
	return upstream.EstimateTotal(total, opts.Offset, opts.Size, n)
}
