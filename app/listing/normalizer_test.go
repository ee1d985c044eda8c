package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/lysyi3m/market-comb/app/marketplace"
)

// fakeClient implements marketplace.Client for normalizer tests.
type fakeClient struct {
	detail     *marketplace.ItemDetail
	detailErr  error
	seller     *marketplace.SellerInfo
	sellerErr  error
	detailHits int
	sellerHits int
}

func (c *fakeClient) Search(ctx context.Context, query marketplace.SearchQuery) ([]marketplace.RawListing, error) {
	return nil, nil
}

func (c *fakeClient) FetchItemDetail(ctx context.Context, itemID int64) (*marketplace.ItemDetail, error) {
	c.detailHits++
	return c.detail, c.detailErr
}

func (c *fakeClient) FetchSeller(ctx context.Context, userID int64) (*marketplace.SellerInfo, error) {
	c.sellerHits++
	return c.seller, c.sellerErr
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func TestNormalizer_RejectsListingWithoutURL(t *testing.T) {
	normalizer := NewNormalizer(&fakeClient{})

	_, ok := normalizer.Run(context.Background(), marketplace.RawListing{Title: "Orphan"})
	if ok {
		t.Error("Listing without URL should be rejected")
	}
}

func TestNormalizer_ImageResolution(t *testing.T) {
	normalizer := NewNormalizer(&fakeClient{})

	cases := []struct {
		name     string
		raw      marketplace.RawListing
		expected string
	}{
		{
			name: "photo object wins",
			raw: marketplace.RawListing{
				URL:    "https://example.com/items/1",
				Photo:  &marketplace.Photo{URL: "https://img.example.com/1.jpg"},
				Photos: []marketplace.Photo{{URL: "https://img.example.com/other.jpg"}},
			},
			expected: "https://img.example.com/1.jpg",
		},
		{
			name: "photos list as fallback",
			raw: marketplace.RawListing{
				URL:    "https://example.com/items/2",
				Photos: []marketplace.Photo{{URL: "https://img.example.com/2.jpg"}},
			},
			expected: "https://img.example.com/2.jpg",
		},
		{
			name: "flat image field as last resort",
			raw: marketplace.RawListing{
				URL:   "https://example.com/items/3",
				Image: "http://img.example.com/3.jpg",
			},
			expected: "http://img.example.com/3.jpg",
		},
		{
			name:     "no candidate yields placeholder",
			raw:      marketplace.RawListing{URL: "https://example.com/items/4"},
			expected: PlaceholderImageURL,
		},
		{
			name: "relative candidate yields placeholder",
			raw: marketplace.RawListing{
				URL:   "https://example.com/items/5",
				Image: "/img/5.jpg",
			},
			expected: PlaceholderImageURL,
		},
		{
			name: "non-http scheme yields placeholder",
			raw: marketplace.RawListing{
				URL:   "https://example.com/items/6",
				Image: "ftp://img.example.com/6.jpg",
			},
			expected: PlaceholderImageURL,
		},
		{
			name: "broken photo falls through to photos list",
			raw: marketplace.RawListing{
				URL:    "https://example.com/items/7",
				Photo:  &marketplace.Photo{URL: "relative.jpg"},
				Photos: []marketplace.Photo{{URL: "https://img.example.com/7.jpg"}},
			},
			expected: "https://img.example.com/7.jpg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, ok := normalizer.Run(context.Background(), tc.raw)
			if !ok {
				t.Fatal("Listing with URL should not be rejected")
			}
			if result.ImageURL != tc.expected {
				t.Errorf("Expected image URL '%s', got '%s'", tc.expected, result.ImageURL)
			}
		})
	}
}

func TestNormalizer_NegativePriceDefaultsToZero(t *testing.T) {
	normalizer := NewNormalizer(&fakeClient{})

	result, ok := normalizer.Run(context.Background(), marketplace.RawListing{
		URL:   "https://example.com/items/1",
		Price: -5,
	})
	if !ok {
		t.Fatal("Listing should not be rejected")
	}
	if result.Price != 0 {
		t.Errorf("Negative price should normalize to 0, got %f", result.Price)
	}
}

func TestNormalizer_EnrichmentApplied(t *testing.T) {
	userID := int64(77)
	client := &fakeClient{
		detail: &marketplace.ItemDetail{
			ViewCount:     intPtr(42),
			FavoriteCount: intPtr(3),
			Status:        stringPtr("Good"),
			SizeTitle:     stringPtr("L"),
			UserID:        &userID,
		},
		seller: &marketplace.SellerInfo{
			FeedbackReputation: float64Ptr(4.5),
			FeedbackCount:      intPtr(120),
		},
	}
	normalizer := NewNormalizer(client)

	result, ok := normalizer.Run(context.Background(), marketplace.RawListing{
		ID:  9,
		URL: "https://example.com/items/9",
	})
	if !ok {
		t.Fatal("Listing should not be rejected")
	}

	if result.ViewCount == nil || *result.ViewCount != 42 {
		t.Errorf("Expected view count 42, got %v", result.ViewCount)
	}
	if result.InterestedCount == nil || *result.InterestedCount != 3 {
		t.Errorf("Expected interested count 3, got %v", result.InterestedCount)
	}
	if result.Condition == nil || *result.Condition != "Good" {
		t.Errorf("Expected condition 'Good', got %v", result.Condition)
	}
	if result.Size == nil || *result.Size != "L" {
		t.Errorf("Expected size 'L', got %v", result.Size)
	}
	if result.SellerRating == nil || *result.SellerRating != 4.5 {
		t.Errorf("Expected seller rating 4.5, got %v", result.SellerRating)
	}
	if result.SellerFeedbackCount == nil || *result.SellerFeedbackCount != 120 {
		t.Errorf("Expected seller feedback count 120, got %v", result.SellerFeedbackCount)
	}
}

func TestNormalizer_DetailFailureIsAbsorbed(t *testing.T) {
	client := &fakeClient{detailErr: errors.New("connection reset")}
	normalizer := NewNormalizer(client)

	result, ok := normalizer.Run(context.Background(), marketplace.RawListing{
		ID:    9,
		URL:   "https://example.com/items/9",
		Title: "Still fine",
	})
	if !ok {
		t.Fatal("Enrichment failure must not reject the listing")
	}
	if result.Title != "Still fine" {
		t.Errorf("Primary fields must survive enrichment failure, got '%s'", result.Title)
	}
	if result.ViewCount != nil {
		t.Error("Enrichment fields should remain nil on detail failure")
	}
	if client.sellerHits != 0 {
		t.Error("Seller lookup should be skipped when detail fetch fails")
	}
}

func TestNormalizer_SellerFailureIsAbsorbed(t *testing.T) {
	userID := int64(77)
	client := &fakeClient{
		detail:    &marketplace.ItemDetail{ViewCount: intPtr(10), UserID: &userID},
		sellerErr: errors.New("timeout"),
	}
	normalizer := NewNormalizer(client)

	result, ok := normalizer.Run(context.Background(), marketplace.RawListing{
		ID:  9,
		URL: "https://example.com/items/9",
	})
	if !ok {
		t.Fatal("Seller failure must not reject the listing")
	}
	if result.ViewCount == nil || *result.ViewCount != 10 {
		t.Error("Detail fields should survive a failed seller lookup")
	}
	if result.SellerRating != nil {
		t.Error("Seller fields should remain nil on seller failure")
	}
}

func TestNormalizer_NoEnrichmentWithoutItemID(t *testing.T) {
	client := &fakeClient{}
	normalizer := NewNormalizer(client)

	normalizer.Run(context.Background(), marketplace.RawListing{URL: "https://example.com/items/1"})

	if client.detailHits != 0 {
		t.Error("Listings without an item id should not trigger detail fetches")
	}
}

func TestNormalizer_RunBatch_DropsInvalid(t *testing.T) {
	normalizer := NewNormalizer(&fakeClient{})

	batch := []marketplace.RawListing{
		{URL: "https://example.com/items/1", Title: "Keep"},
		{Title: "Drop me"},
		{URL: "https://example.com/items/2", Title: "Keep too"},
	}

	results := normalizer.RunBatch(context.Background(), batch)
	if len(results) != 2 {
		t.Fatalf("Expected 2 normalized listings, got %d", len(results))
	}
}
