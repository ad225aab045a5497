package gravity

import "time"

type Artist struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	Birthday    string `json:"birthday"`
	Blurb       string `json:"blurb"`
}

type Artwork struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Medium    string    `json:"medium"`
	ArtistID  string    `json:"artist_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Show struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PartnerName string    `json:"partner_name"`
	Status      string    `json:"status"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

type Inquiry struct {
	ID        string    `json:"id"`
	ArtworkID string    `json:"inquireable_id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions is an offset window over a list endpoint. Sort is "ASC" or
// "DESC" on the endpoint's natural date.
type ListOptions struct {
	Size   int
	Offset int
	Sort   string
}
