package matching

import (
	"sort"

	"dachioku-backend/internal/domain"
)

// SortKey selects a ranking comparator. All comparators are total orders
// over the model's raw numeric fields; timestamps compare as epoch millis.
type SortKey string

const (
	SortRecent    SortKey = "recent"     // createdAt, newest first
	SortPopular   SortKey = "popular"    // viewCount, highest first
	SortBudget    SortKey = "budget"     // budget max, highest first (needs)
	SortPriceLow  SortKey = "price_low"  // price ascending (entries)
	SortPriceHigh SortKey = "price_high" // price descending (entries)
)

// ParseSortKey maps a client-supplied sort param to a SortKey, defaulting
// to recent for unknown or empty values.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRecent, SortPopular, SortBudget, SortPriceLow, SortPriceHigh:
		return SortKey(s)
	default:
		return SortRecent
	}
}

// RankNeeds returns a freshly ordered copy of needs. The sort is stable:
// equal keys keep the input's relative order, so repeated ranking of the
// same input is deterministic and pagination stays consistent.
func RankNeeds(needs []domain.Need, key SortKey) []domain.Need {
	out := make([]domain.Need, len(needs))
	copy(out, needs)
	switch key {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ViewCount > out[j].ViewCount
		})
	case SortBudget:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].BudgetMax > out[j].BudgetMax
		})
	default: // SortRecent
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.UnixMilli() > out[j].CreatedAt.UnixMilli()
		})
	}
	return out
}

// RankEntries returns a freshly ordered copy of entries, stable like
// RankNeeds.
func RankEntries(entries []domain.Entry, key SortKey) []domain.Entry {
	out := make([]domain.Entry, len(entries))
	copy(out, entries)
	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	default: // SortRecent
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.UnixMilli() > out[j].CreatedAt.UnixMilli()
		})
	}
	return out
}
