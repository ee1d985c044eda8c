package listing

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/lysyi3m/market-comb/app/marketplace"
)

// imageStrategy extracts one image URL candidate from a raw listing.
// Strategies are tried in order; the first absolute http/https candidate wins.
type imageStrategy func(raw marketplace.RawListing) string

var imageStrategies = []imageStrategy{
	func(raw marketplace.RawListing) string {
		if raw.Photo != nil {
			return raw.Photo.URL
		}
		return ""
	},
	func(raw marketplace.RawListing) string {
		if len(raw.Photos) > 0 {
			return raw.Photos[0].URL
		}
		return ""
	},
	func(raw marketplace.RawListing) string {
		return raw.Image
	},
}

// Normalizer converts raw marketplace listings into canonical Listing records,
// enriching them with best-effort detail and seller lookups.
type Normalizer struct {
	client marketplace.Client
}

func NewNormalizer(client marketplace.Client) *Normalizer {
	return &Normalizer{client: client}
}

// Run normalizes a single raw listing. The second return value is false when
// the listing has no URL and must be dropped. Enrichment failures never
// propagate: the affected fields simply remain nil.
func (n *Normalizer) Run(ctx context.Context, raw marketplace.RawListing) (Listing, bool) {
	if raw.URL == "" {
		return Listing{}, false
	}

	price := raw.Price
	if price < 0 {
		price = 0
	}

	result := Listing{
		URL:         raw.URL,
		Title:       raw.Title,
		Description: raw.Description,
		Price:       price,
		ImageURL:    resolveImageURL(raw),
		CreatedAt:   raw.CreatedAt,
		BumpTime:    raw.BumpTime,
	}

	if raw.ID != 0 {
		n.enrich(ctx, raw.ID, &result)
	}

	return result, true
}

// RunBatch normalizes a whole search batch, dropping listings without a URL.
func (n *Normalizer) RunBatch(ctx context.Context, rawListings []marketplace.RawListing) []Listing {
	results := make([]Listing, 0, len(rawListings))
	for _, raw := range rawListings {
		normalized, ok := n.Run(ctx, raw)
		if !ok {
			slog.Debug("Dropping listing without URL", "title", raw.Title)
			continue
		}
		results = append(results, normalized)
	}
	return results
}

func (n *Normalizer) enrich(ctx context.Context, itemID int64, result *Listing) {
	detail, err := n.client.FetchItemDetail(ctx, itemID)
	if err != nil {
		slog.Warn("Item detail fetch failed", "item_id", itemID, "error", err)
		return
	}
	if detail == nil {
		return
	}

	result.ViewCount = detail.ViewCount
	result.InterestedCount = detail.FavoriteCount
	result.Condition = detail.Status
	result.Size = detail.SizeTitle

	if detail.UserID == nil {
		return
	}

	seller, err := n.client.FetchSeller(ctx, *detail.UserID)
	if err != nil {
		slog.Warn("Seller fetch failed", "user_id", *detail.UserID, "error", err)
		return
	}
	if seller == nil {
		return
	}

	result.SellerRating = seller.FeedbackReputation
	result.SellerFeedbackCount = seller.FeedbackCount
}

func resolveImageURL(raw marketplace.RawListing) string {
	for _, strategy := range imageStrategies {
		candidate := strategy(raw)
		if isAbsoluteURL(candidate) {
			return candidate
		}
	}
	return PlaceholderImageURL
}

func isAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
