package graph

import (
	"context"

	"artmarket-gateway/internal/analytics"
	"artmarket-gateway/internal/cms"
	"artmarket-gateway/internal/exchange"
	"artmarket-gateway/internal/gravity"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockGravity struct {
	mock.Mock
}

func (m *MockGravity) Artist(ctx context.Context, id string) (*gravity.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gravity.Artist), args.Error(1)
}

func (m *MockGravity) Artwork(ctx context.Context, id string) (*gravity.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gravity.Artwork), args.Error(1)
}

func (m *MockGravity) ArtistArtworks(ctx context.Context, artistID string, opts gravity.ListOptions) ([]gravity.Artwork, int, error) {
	args := m.Called(ctx, artistID, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]gravity.Artwork), args.Int(1), args.Error(2)
}

func (m *MockGravity) ArtistShows(ctx context.Context, artistID string, opts gravity.ListOptions) ([]gravity.Show, int, error) {
	args := m.Called(ctx, artistID, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]gravity.Show), args.Int(1), args.Error(2)
}

func (m *MockGravity) InquiryRequests(ctx context.Context, userID string, opts gravity.ListOptions) ([]gravity.Inquiry, int, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]gravity.Inquiry), args.Int(1), args.Error(2)
}

type MockExchange struct {
	mock.Mock
}

func (m *MockExchange) Orders(ctx context.Context, buyerID string, opts exchange.ListOptions) ([]exchange.Order, int, error) {
	args := m.Called(ctx, buyerID, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]exchange.Order), args.Int(1), args.Error(2)
}

type MockArticles struct {
	mock.Mock
}

func (m *MockArticles) ArtistArticles(ctx context.Context, artistID string, opts cms.ListOptions) ([]cms.Article, int, error) {
	args := m.Called(ctx, artistID, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]cms.Article), args.Int(1), args.Error(2)
}

type MockAnalytics struct {
	mock.Mock
}

func (m *MockAnalytics) RecordView(ctx context.Context, userID, artworkID, userAgent string) (*analytics.View, error) {
	args := m.Called(ctx, userID, artworkID, userAgent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.View), args.Error(1)
}

func (m *MockAnalytics) RecentlyViewed(ctx context.Context, userID string, limit, offset int) ([]analytics.RecentView, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]analytics.RecentView), args.Int(1), args.Error(2)
}

func (m *MockAnalytics) ViewCounts(ctx context.Context, artworkIDs []string) (map[string]int, error) {
	args := m.Called(ctx, artworkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// --- Helpers ---

type testDeps struct {
	gravity   *MockGravity
	exchange  *MockExchange
	articles  *MockArticles
	analytics *MockAnalytics
}

func newTestResolver() (*Resolver, testDeps) {
	d := testDeps{
		gravity:   new(MockGravity),
		exchange:  new(MockExchange),
		articles:  new(MockArticles),
		analytics: new(MockAnalytics),
	}
	r := &Resolver{
		Gravity:   d.gravity,
		Exchange:  d.exchange,
		Articles:  d.articles,
		Analytics: d.analytics,
	}
	return r, d
}
