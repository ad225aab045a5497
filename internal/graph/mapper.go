package graph

import (
	"strconv"

	"artmarket-gateway/internal/analytics"
	"artmarket-gateway/internal/cms"
	"artmarket-gateway/internal/exchange"
	"artmarket-gateway/internal/gravity"
)

func mapArtist(a *gravity.Artist) *Artist {
	if a == nil {
		return nil
	}
	return &Artist{
		ID:          a.ID,
		Slug:        a.Slug,
		Name:        a.Name,
		Nationality: a.Nationality,
		Birthday:    a.Birthday,
		Blurb:       a.Blurb,
	}
}

func mapArtwork(a *gravity.Artwork) *Artwork {
	if a == nil {
		return nil
	}
	return &Artwork{
		ID:        a.ID,
		Slug:      a.Slug,
		Title:     a.Title,
		Date:      a.Date,
		Medium:    a.Medium,
		ArtistID:  a.ArtistID,
		CreatedAt: a.CreatedAt,
	}
}

func mapArtworks(in []gravity.Artwork) []*Artwork {
	out := make([]*Artwork, 0, len(in))
	for i := range in {
		out = append(out, mapArtwork(&in[i]))
	}
	return out
}

func mapShow(s gravity.Show) *Show {
	return &Show{
		ID:          s.ID,
		Name:        s.Name,
		PartnerName: s.PartnerName,
		Status:      s.Status,
		StartAt:     s.StartAt,
		EndAt:       s.EndAt,
	}
}

func mapArticle(a cms.Article) *Article {
	return &Article{
		ID:          a.ID,
		Slug:        a.Slug,
		Title:       a.Title,
		Author:      a.Author,
		Lead:        a.Lead,
		PublishedAt: a.PublishedAt,
	}
}

func mapOrder(o exchange.Order) *Order {
	return &Order{
		ID:           o.ID,
		Code:         o.Code,
		State:        o.State,
		ArtworkID:    o.ArtworkID,
		TotalCents:   int(o.TotalCents),
		CurrencyCode: o.CurrencyCode,
		CreatedAt:    o.CreatedAt,
	}
}

func mapInquiry(i gravity.Inquiry) *Inquiry {
	return &Inquiry{
		ID:        i.ID,
		ArtworkID: i.ArtworkID,
		Message:   i.Message,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}

func mapRecordedView(v *analytics.View) *RecordedView {
	return &RecordedView{
		ID:        strconv.FormatInt(v.ID, 10),
		ArtworkID: v.ArtworkID,
		ViewedAt:  v.ViewedAt,
	}
}
