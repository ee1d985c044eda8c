package marketplace

// SearchQuery describes a catalog search against the marketplace.
type SearchQuery struct {
	Keywords string
	MaxPrice *float64
}

// Photo is a single image attached to a raw listing.
type Photo struct {
	URL         string `json:"url"`
	FullSizeURL string `json:"full_size_url,omitempty"`
}

// RawListing is one catalog entry as returned by the marketplace search API.
// The image may arrive in any of three shapes: a single photo object, a list
// of photos, or a flat image field.
type RawListing struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	URL         string  `json:"url"`
	CreatedAt   *int64  `json:"created_at"`
	BumpTime    *int64  `json:"bump_time"`
	Photo       *Photo  `json:"photo,omitempty"`
	Photos      []Photo `json:"photos,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// ItemDetail is the secondary per-item lookup payload.
type ItemDetail struct {
	ViewCount     *int    `json:"view_count"`
	FavoriteCount *int    `json:"favorite_count"`
	Status        *string `json:"status"`
	SizeTitle     *string `json:"size_title"`
	UserID        *int64  `json:"user_id"`
}

// SellerInfo is the seller reputation lookup payload.
type SellerInfo struct {
	FeedbackReputation *float64 `json:"feedback_reputation"`
	FeedbackCount      *int     `json:"feedback_count"`
}
