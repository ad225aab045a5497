package analytics

import (
	"context"
	"errors"

	"artmarket-gateway/internal/logger"

	"go.uber.org/zap"
)

var ErrInvalidView = errors.New("analytics: user and artwork are required")

type Service interface {
	RecordView(ctx context.Context, userID, artworkID, userAgent string) (*View, error)
	RecentlyViewed(ctx context.Context, userID string, limit, offset int) ([]RecentView, int, error)
	ViewCounts(ctx context.Context, artworkIDs []string) (map[string]int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordView(ctx context.Context, userID, artworkID, userAgent string) (*View, error) {
	if userID == "" || artworkID == "" {
		return nil, ErrInvalidView
	}
	v, err := s.repo.InsertView(ctx, View{UserID: userID, ArtworkID: artworkID, UserAgent: userAgent})
	if err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("artwork view recorded", zap.String("artwork_id", artworkID))
	return v, nil
}

// RecentlyViewed returns one window of the user's viewed artworks, newest
// first, and how many distinct artworks the user has viewed.
func (s *service) RecentlyViewed(ctx context.Context, userID string, limit, offset int) ([]RecentView, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RecentlyViewed"),
	)

	total, err := s.repo.CountViewedArtworks(ctx, userID)
	if err != nil {
		log.Error("failed to count viewed artworks", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 || offset >= total || limit <= 0 {
		return []RecentView{}, total, nil
	}

	views, err := s.repo.RecentlyViewed(ctx, userID, limit, offset)
	if err != nil {
		log.Error("failed to get recently viewed artworks", zap.Error(err))
		return nil, 0, err
	}
	return views, total, nil
}

func (s *service) ViewCounts(ctx context.Context, artworkIDs []string) (map[string]int, error) {
	return s.repo.ViewCounts(ctx, artworkIDs)
}
