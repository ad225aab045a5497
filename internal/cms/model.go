package cms

import "time"

// Article is an editorial piece about an artist.
type Article struct {
	ID          string    `json:"id"`
	ArtistID    string    `json:"artist_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Lead        string    `json:"lead"`
	PublishedAt time.Time `json:"published_at"`
}

type ListOptions struct {
	Size   int
	Offset int
	Sort   string
}
