package matching

import "dachioku-backend/internal/domain"

// BuildNeedView composes a display view: filter, then rank, then truncate.
// The order is a contract — truncating before ranking would bias results
// toward insertion order. limit <= 0 returns the full ranked sequence.
func BuildNeedView(needs []domain.Need, f NeedFilter, key SortKey, limit int) []domain.Need {
	ranked := RankNeeds(FilterNeeds(needs, f), key)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// BuildEntryView is the entry-side view pipeline, same contract.
func BuildEntryView(entries []domain.Entry, f EntryFilter, key SortKey, limit int) []domain.Entry {
	ranked := RankEntries(FilterEntries(entries, f), key)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
