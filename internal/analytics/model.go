package analytics

import "time"

// View is one artwork page view by a collector.
type View struct {
	ID        int64
	UserID    string
	ArtworkID string
	UserAgent string
	ViewedAt  time.Time
}

// RecentView is the latest view of one artwork by one collector.
type RecentView struct {
	ArtworkID    string
	LastViewedAt time.Time
	Views        int
}
