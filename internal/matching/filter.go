package matching

import (
	"strings"

	"dachioku-backend/internal/domain"

	"github.com/google/uuid"
)

// NeedFilter is an AND-combined predicate set over needs. Zero-value
// fields are no-ops, so the zero filter passes everything through.
type NeedFilter struct {
	Category string
	OwnerID  uuid.UUID
	Query    string
}

// EntryFilter is the entry-side predicate set.
type EntryFilter struct {
	NeedID  uuid.UUID
	OwnerID uuid.UUID
	Query   string
}

// FilterNeeds returns the subsequence of needs matching f, in the input's
// relative order. The input slice is never mutated.
func FilterNeeds(needs []domain.Need, f NeedFilter) []domain.Need {
	out := make([]domain.Need, 0, len(needs))
	query := strings.ToLower(f.Query)
	for _, n := range needs {
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if f.OwnerID != uuid.Nil && n.UserID != f.OwnerID {
			continue
		}
		if query != "" && !matchesText(query, n.Title, n.Description) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// FilterEntries returns the subsequence of entries matching f, in the
// input's relative order.
func FilterEntries(entries []domain.Entry, f EntryFilter) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	query := strings.ToLower(f.Query)
	for _, e := range entries {
		if f.NeedID != uuid.Nil && e.NeedID != f.NeedID {
			continue
		}
		if f.OwnerID != uuid.Nil && e.UserID != f.OwnerID {
			continue
		}
		if query != "" && !matchesText(query, e.Description) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesText does a case-insensitive substring match against any field.
func matchesText(loweredQuery string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), loweredQuery) {
			return true
		}
	}
	return false
}
