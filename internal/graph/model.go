package graph

import "time"

// Node models handed to graphql-go. Field resolution goes through the json
// tags, so they follow the schema's field names.

type Artist struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	Birthday    string `json:"birthday"`
	Blurb       string `json:"blurb"`
}

type Artwork struct {
	ID           string     `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Date         string     `json:"date"`
	Medium       string     `json:"medium"`
	ArtistID     string     `json:"artistID"`
	CreatedAt    time.Time  `json:"createdAt"`
	ViewCount    int        `json:"viewCount"`
	LastViewedAt *time.Time `json:"lastViewedAt"`

	viewsLoaded bool
}

type Article struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Lead        string    `json:"lead"`
	PublishedAt time.Time `json:"publishedAt"`
}

type Show struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PartnerName string    `json:"partnerName"`
	Status      string    `json:"status"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
}

type Order struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	State        string    `json:"state"`
	ArtworkID    string    `json:"artworkID"`
	TotalCents   int       `json:"totalCents"`
	CurrencyCode string    `json:"currencyCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Inquiry struct {
	ID        string    `json:"id"`
	ArtworkID string    `json:"artworkID"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Me struct {
	ID string `json:"id"`
}

type RecordedView struct {
	ID        string    `json:"id"`
	ArtworkID string    `json:"artworkID"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// datedNode is a member of a merged feed. Feeds are ordered by Date with
// ties broken by source and ID.
type datedNode interface {
	NodeID() string
	Date() time.Time
}

func (a *Article) NodeID() string  { return a.ID }
func (a *Article) Date() time.Time { return a.PublishedAt }

func (s *Show) NodeID() string  { return s.ID }
func (s *Show) Date() time.Time { return s.StartAt }

func (o *Order) NodeID() string  { return o.ID }
func (o *Order) Date() time.Time { return o.CreatedAt }

func (i *Inquiry) NodeID() string  { return i.ID }
func (i *Inquiry) Date() time.Time { return i.CreatedAt }
