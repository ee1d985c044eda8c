package listing

import (
	"math"
	"sort"
)

// SortKey selects the ordering of a listing result set.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// ParseSortKey maps a query parameter onto a SortKey, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

// Sort orders listings in place. Listings without a marketplace posting time
// sort as the oldest possible value.
func Sort(items []Listing, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return createdAtOrMin(items[i]) < createdAtOrMin(items[j])
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return createdAtOrMin(items[i]) > createdAtOrMin(items[j])
		})
	}
}

// FilterByPrice keeps listings within the optional min/max price bounds.
func FilterByPrice(items []Listing, minPrice, maxPrice *float64) []Listing {
	if minPrice == nil && maxPrice == nil {
		return items
	}

	filtered := make([]Listing, 0, len(items))
	for _, item := range items {
		if minPrice != nil && item.Price < *minPrice {
			continue
		}
		if maxPrice != nil && item.Price > *maxPrice {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func createdAtOrMin(item Listing) int64 {
	if item.CreatedAt == nil {
		return math.MinInt64
	}
	return *item.CreatedAt
}
