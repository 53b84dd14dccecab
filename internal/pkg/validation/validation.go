package validation

import "strings"

const (
	MaxNeedImages  = 5
	MaxEntryImages = 3
)

// IsValidBudget enforces 0 <= min <= max.
func IsValidBudget(min, max int64) bool {
	return min >= 0 && min <= max
}

// IsValidPrice rejects negative amounts.
func IsValidPrice(price int64) bool {
	return price >= 0
}

// NormalizeTags converts client tag input to the canonical representation:
// trimmed, empty entries dropped, duplicates removed, first-appearance
// order kept. The mobile client historically sent tags as either a string
// or an array; callers split strings before passing them here.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// SplitTags parses the legacy comma-separated tag string form.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(s, ","))
}
