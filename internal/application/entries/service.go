package entries

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"dachioku-backend/internal/application/needs"
	"dachioku-backend/internal/catalog"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/infrastructure/cache"
	"dachioku-backend/internal/matching"
	"dachioku-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is the entry lifecycle state machine: submit -> pending,
// pending -> accepted|rejected, both terminal. Accepting one entry
// auto-rejects every other pending entry on the same need.
type Service struct {
	DB      *gorm.DB
	Catalog catalog.Store
	Cache   *cache.Cache

	mu        sync.Mutex
	needLocks map[uuid.UUID]*sync.Mutex
}

func NewService(db *gorm.DB, store catalog.Store, c *cache.Cache) *Service {
	return &Service{DB: db, Catalog: store, Cache: c, needLocks: make(map[uuid.UUID]*sync.Mutex)}
}

// lockNeed serializes lifecycle operations per need so two concurrent
// accepts on siblings cannot both pass the pending check.
func (s *Service) lockNeed(needID uuid.UUID) func() {
	s.mu.Lock()
	if s.needLocks == nil {
		s.needLocks = make(map[uuid.UUID]*sync.Mutex)
	}
	l, ok := s.needLocks[needID]
	if !ok {
		l = &sync.Mutex{}
		s.needLocks[needID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// SubmitInput carries the bidder's proposal against one need.
type SubmitInput struct {
	NeedID                uuid.UUID
	UserID                uuid.UUID
	Description           string
	Price                 int64
	Images                []string
	EstimatedDeliveryDate *time.Time
	DeliveryMethod        domain.DeliveryMethod
	ShippingCost          *int64
	AdditionalNotes       *string
}

func (in SubmitInput) validate() error {
	if in.Description == "" {
		return domain.NewValidationError("description", "must not be empty")
	}
	if !validation.IsValidPrice(in.Price) {
		return domain.NewValidationError("price", "must not be negative")
	}
	if len(in.Images) > validation.MaxEntryImages {
		return domain.NewValidationError("images", "at most 3 images allowed")
	}
	if in.ShippingCost != nil && *in.ShippingCost < 0 {
		return domain.NewValidationError("shipping_cost", "must not be negative")
	}
	if in.DeliveryMethod != "" && !domain.ValidDeliveryMethod(in.DeliveryMethod) {
		return domain.NewValidationError("delivery_method", "must be shipping, pickup or both")
	}
	return nil
}

// Submit creates a pending entry. Fails with ErrNeedClosed when the need
// is not open and ErrSelfBid when the bidder owns the need. The entry row
// and the need's entry_count move together in one transaction.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Entry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	unlock := s.lockNeed(in.NeedID)
	defer unlock()

	deliveryMethod := in.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = domain.DeliveryShipping
	}

	var entry domain.Entry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var need domain.Need
		if err := tx.Where("need_id = ?", in.NeedID).First(&need).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNeedNotFound
			}
			return err
		}
		if need.Status != domain.NeedOpen {
			return domain.ErrNeedClosed
		}
		if need.UserID == in.UserID {
			return domain.ErrSelfBid
		}

		entry = domain.Entry{
			NeedID:                in.NeedID,
			UserID:                in.UserID,
			Description:           in.Description,
			Price:                 in.Price,
			Images:                toJSONArray(in.Images),
			Status:                domain.EntryPending,
			EstimatedDeliveryDate: in.EstimatedDeliveryDate,
			DeliveryMethod:        deliveryMethod,
			ShippingCost:          in.ShippingCost,
			AdditionalNotes:       in.AdditionalNotes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Need{}).
			Where("need_id = ?", in.NeedID).
			UpdateColumn("entry_count", gorm.Expr("entry_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("entry_id", entry.EntryID.String()).Str("need_id", in.NeedID.String()).Msg("Entry submitted")
	return &entry, nil
}

// Accept marks the entry accepted, rejects all sibling pending entries
// and moves the need to in_progress, atomically. Any entry no longer
// pending, or a need past in_progress, fails with ErrInvalidTransition
// and leaves everything untouched.
func (s *Service) Accept(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error) {
	entry, err := s.Catalog.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	unlock := s.lockNeed(entry.NeedID)
	defer unlock()

	var accepted domain.Entry
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read under the lock: the snapshot above may be stale.
		if err := tx.Where("entry_id = ?", entryID).First(&accepted).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrEntryNotFound
			}
			return err
		}
		if accepted.Status != domain.EntryPending {
			return domain.ErrInvalidTransition
		}

		var need domain.Need
		if err := tx.Where("need_id = ?", accepted.NeedID).First(&need).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNeedNotFound
			}
			return err
		}
		if need.Status != domain.NeedOpen && need.Status != domain.NeedInProgress {
			return domain.ErrInvalidTransition
		}

		if err := tx.Model(&domain.Entry{}).
			Where("need_id = ? AND status = ? AND entry_id <> ?", accepted.NeedID, domain.EntryPending, entryID).
			Update("status", domain.EntryRejected).Error; err != nil {
			return err
		}
		accepted.Status = domain.EntryAccepted
		if err := tx.Model(&domain.Entry{}).
			Where("entry_id = ?", entryID).
			Update("status", domain.EntryAccepted).Error; err != nil {
			return err
		}
		if domain.CanTransitionNeed(need.Status, domain.NeedInProgress) {
			if err := tx.Model(&domain.Need{}).
				Where("need_id = ?", need.NeedID).
				Update("status", domain.NeedInProgress).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Need status changed; the cached home feed is stale.
	_ = s.Cache.Invalidate(ctx, needs.FeedCacheKey)

	log.Info().Str("entry_id", entryID.String()).Str("need_id", accepted.NeedID.String()).Msg("Entry accepted, siblings rejected")
	return &accepted, nil
}

// Reject marks a pending entry rejected. No effect on siblings or on the
// parent need.
func (s *Service) Reject(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error) {
	entry, err := s.Catalog.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	unlock := s.lockNeed(entry.NeedID)
	defer unlock()

	var rejected domain.Entry
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entryID).First(&rejected).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrEntryNotFound
			}
			return err
		}
		if rejected.Status != domain.EntryPending {
			return domain.ErrInvalidTransition
		}
		rejected.Status = domain.EntryRejected
		return tx.Model(&domain.Entry{}).
			Where("entry_id = ?", entryID).
			Update("status", domain.EntryRejected).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("entry_id", entryID.String()).Msg("Entry rejected")
	return &rejected, nil
}

// ListForNeed returns the need's entries ranked by sortKey (recent,
// price_low, price_high).
func (s *Service) ListForNeed(ctx context.Context, needID uuid.UUID, sortKey matching.SortKey) ([]domain.Entry, error) {
	if _, err := s.Catalog.GetNeed(ctx, needID); err != nil {
		return nil, err
	}
	entries, err := s.Catalog.ListEntries(ctx, needID)
	if err != nil {
		return nil, err
	}
	return matching.BuildEntryView(entries, matching.EntryFilter{NeedID: needID}, sortKey, 0), nil
}

// Detail is the entry-detail view: the entry plus its bidder and need.
type Detail struct {
	Entry  domain.Entry `json:"entry"`
	Bidder *domain.User `json:"bidder"`
	Need   *domain.Need `json:"need"`
}

// Get assembles the detail view for one entry. A missing bidder record is
// tolerated (reference data may lag), a missing need is not.
func (s *Service) Get(ctx context.Context, entryID uuid.UUID) (*Detail, error) {
	entry, err := s.Catalog.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	need, err := s.Catalog.GetNeed(ctx, entry.NeedID)
	if err != nil {
		return nil, err
	}
	bidder, err := s.Catalog.GetUser(ctx, entry.UserID)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, err
	}
	return &Detail{Entry: *entry, Bidder: bidder, Need: need}, nil
}

func toJSONArray(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}
