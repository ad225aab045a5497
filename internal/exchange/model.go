package exchange

import "time"

type Order struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	State         string    `json:"state"`
	BuyerID       string    `json:"buyer_id"`
	ArtworkID     string    `json:"artwork_id"`
	TotalCents    int64     `json:"buyer_total_cents"`
	CurrencyCode  string    `json:"currency_code"`
	CreatedAt     time.Time `json:"created_at"`
	StateUpdateAt time.Time `json:"state_updated_at"`
}

type ListOptions struct {
	Size   int
	Offset int
	Sort   string
	States []string
}
