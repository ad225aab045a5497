package analytics

import (
	"context"
	"database/sql"

	"artmarket-gateway/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	InsertView(ctx context.Context, v View) (*View, error)
	RecentlyViewed(ctx context.Context, userID string, limit, offset int) ([]RecentView, error)
	CountViewedArtworks(ctx context.Context, userID string) (int, error)
	ViewCounts(ctx context.Context, artworkIDs []string) (map[string]int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertView(ctx context.Context, v View) (*View, error) {
	query := `
		INSERT INTO artwork_views (user_id, artwork_id, user_agent)
		VALUES ($1, $2, $3)
		RETURNING id, viewed_at
	`

	out := v
	err := r.db.QueryRowContext(ctx, query, v.UserID, v.ArtworkID, v.UserAgent).
		Scan(&out.ID, &out.ViewedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert artwork view",
			zap.String("artwork_id", v.ArtworkID),
			zap.Error(err),
		)
		return nil, err
	}
	return &out, nil
}

func (r *repository) RecentlyViewed(ctx context.Context, userID string, limit, offset int) ([]RecentView, error) {
	query := `
		SELECT
			artwork_id,
			MAX(viewed_at) AS last_viewed_at,
			COUNT(*) AS views
		FROM artwork_views
		WHERE user_id = $1
		GROUP BY artwork_id
		ORDER BY last_viewed_at DESC, artwork_id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query recently viewed artworks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	views := []RecentView{}
	for rows.Next() {
		var v RecentView
		if err := rows.Scan(&v.ArtworkID, &v.LastViewedAt, &v.Views); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *repository) CountViewedArtworks(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT artwork_id) FROM artwork_views WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}

func (r *repository) ViewCounts(ctx context.Context, artworkIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(artworkIDs))
	if len(artworkIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT artwork_id, COUNT(*)
		FROM artwork_views
		WHERE artwork_id = ANY($1)
		GROUP BY artwork_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(artworkIDs))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to count artwork views", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
