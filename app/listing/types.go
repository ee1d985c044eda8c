package listing

// PlaceholderImageURL substitutes for listings without a usable absolute image URL.
const PlaceholderImageURL = "https://via.placeholder.com/300x200?text=No+Image"

// Listing is one normalized marketplace item record. The URL is its identity;
// a listing without one is dropped during normalization. Timestamp is the
// store-assigned ingestion time (RFC3339 UTC), not the marketplace posting time.
type Listing struct {
	URL                 string   `json:"url"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Price               float64  `json:"price"`
	ImageURL            string   `json:"image_url"`
	CreatedAt           *int64   `json:"created_at"`
	BumpTime            *int64   `json:"bump_time"`
	ViewCount           *int     `json:"view_count"`
	InterestedCount     *int     `json:"interested_count"`
	Condition           *string  `json:"condition"`
	Size                *string  `json:"size"`
	SellerRating        *float64 `json:"seller_rating"`
	SellerFeedbackCount *int     `json:"seller_feedback_count"`
	Timestamp           string   `json:"timestamp"`
}
