// Package catalog is the storage boundary for needs, entries and users.
// The matching engines never assume an index or sort order from these
// calls; every view is assembled in memory from the snapshot returned.
package catalog

import (
	"context"

	"dachioku-backend/internal/domain"

	"github.com/google/uuid"
)

// Store is the read boundary any backing store must satisfy. The GORM
// implementation below is the production one; tests run it against an
// in-memory sqlite database.
type Store interface {
	ListNeeds(ctx context.Context) ([]domain.Need, error)
	// ListEntries returns entries for one need, or all entries when
	// needID is uuid.Nil.
	ListEntries(ctx context.Context, needID uuid.UUID) ([]domain.Entry, error)
	GetNeed(ctx context.Context, id uuid.UUID) (*domain.Need, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
