package needs

import (
	"context"
	"encoding/json"
	"time"

	"dachioku-backend/internal/catalog"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/infrastructure/cache"
	"dachioku-backend/internal/matching"
	"dachioku-backend/internal/pkg/constants"
	"dachioku-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedCacheKey holds the uncategorized home feed (top 5 recent open
// needs). Invalidated whenever a need is created or changes status.
const FeedCacheKey = "needs:feed"

const feedCacheTTL = time.Minute

// FeedLimit matches the home screen: only the first 5 needs are shown.
const FeedLimit = 5

// RelatedLimit matches the need-detail "related needs" strip.
const RelatedLimit = 5

// Service assembles need views from the catalog and ingests new needs.
type Service struct {
	DB      *gorm.DB
	Catalog catalog.Store
	Cache   *cache.Cache
}

func NewService(db *gorm.DB, store catalog.Store, c *cache.Cache) *Service {
	return &Service{DB: db, Catalog: store, Cache: c}
}

// CreateInput carries a requester's new need.
type CreateInput struct {
	UserID                 uuid.UUID
	Title                  string
	Description            string
	Category               string
	BudgetMin              int64
	BudgetMax              int64
	Deadline               time.Time
	Tags                   []string
	IsUrgent               bool
	IsNegotiable           bool
	Location               *string
	Quantity               *string
	PreferredDelivery      domain.DeliveryMethod
	Images                 []string
	AdditionalRequirements *string
}

func (in CreateInput) validate() error {
	if in.Title == "" {
		return domain.NewValidationError("title", "must not be empty")
	}
	if in.Description == "" {
		return domain.NewValidationError("description", "must not be empty")
	}
	if !constants.IsValidCategory(in.Category) {
		return domain.NewValidationError("category", "unknown category id")
	}
	if !validation.IsValidBudget(in.BudgetMin, in.BudgetMax) {
		return domain.NewValidationError("budget", "requires 0 <= min <= max")
	}
	if in.Deadline.IsZero() {
		return domain.NewValidationError("deadline", "must be set")
	}
	if len(in.Images) > validation.MaxNeedImages {
		return domain.NewValidationError("images", "at most 5 images allowed")
	}
	if in.PreferredDelivery != "" && !domain.ValidDeliveryMethod(in.PreferredDelivery) {
		return domain.NewValidationError("preferred_delivery", "must be shipping, pickup or both")
	}
	return nil
}

// Create validates and persists a new open need. Tags are normalized to
// the canonical form before storage.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Need, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	delivery := in.PreferredDelivery
	if delivery == "" {
		delivery = domain.DeliveryBoth
	}

	need := domain.Need{
		UserID:                 in.UserID,
		Title:                  in.Title,
		Description:            in.Description,
		Category:               in.Category,
		BudgetMin:              in.BudgetMin,
		BudgetMax:              in.BudgetMax,
		Deadline:               in.Deadline,
		Status:                 domain.NeedOpen,
		Tags:                   toJSONArray(validation.NormalizeTags(in.Tags)),
		IsUrgent:               in.IsUrgent,
		IsNegotiable:           in.IsNegotiable,
		Location:               in.Location,
		Quantity:               in.Quantity,
		PreferredDelivery:      delivery,
		Images:                 toJSONArray(in.Images),
		AdditionalRequirements: in.AdditionalRequirements,
	}
	if err := s.DB.WithContext(ctx).Create(&need).Error; err != nil {
		return nil, err
	}

	_ = s.Cache.Invalidate(ctx, FeedCacheKey)

	log.Info().Str("need_id", need.NeedID.String()).Str("category", need.Category).Msg("Need created")
	return &need, nil
}

// Feed is the home-screen view: top 5 most recent needs, optionally
// category-scoped. The uncategorized feed is served cache-aside.
func (s *Service) Feed(ctx context.Context, category string) ([]domain.Need, error) {
	if category == "" {
		if data, err := s.Cache.Get(ctx, FeedCacheKey); err == nil {
			var cached []domain.Need
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	all, err := s.Catalog.ListNeeds(ctx)
	if err != nil {
		return nil, err
	}
	feed := matching.BuildNeedView(all, matching.NeedFilter{Category: category}, matching.SortRecent, FeedLimit)

	if category == "" {
		if data, err := json.Marshal(feed); err == nil {
			_ = s.Cache.Set(ctx, FeedCacheKey, data, feedCacheTTL)
		}
	}
	return feed, nil
}

// Search returns the full filtered and ranked catalog, no truncation
// unless the caller asks for one.
func (s *Service) Search(ctx context.Context, query, category string, sortKey matching.SortKey, limit int) ([]domain.Need, error) {
	all, err := s.Catalog.ListNeeds(ctx)
	if err != nil {
		return nil, err
	}
	return matching.BuildNeedView(all, matching.NeedFilter{Query: query, Category: category}, sortKey, limit), nil
}

// ListByOwner is the "my needs" view, newest first.
func (s *Service) ListByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Need, error) {
	all, err := s.Catalog.ListNeeds(ctx)
	if err != nil {
		return nil, err
	}
	return matching.BuildNeedView(all, matching.NeedFilter{OwnerID: userID}, matching.SortRecent, 0), nil
}

// Related returns up to 5 other needs in the same category.
func (s *Service) Related(ctx context.Context, needID uuid.UUID) ([]domain.Need, error) {
	need, err := s.Catalog.GetNeed(ctx, needID)
	if err != nil {
		return nil, err
	}
	all, err := s.Catalog.ListNeeds(ctx)
	if err != nil {
		return nil, err
	}
	sameCategory := matching.FilterNeeds(all, matching.NeedFilter{Category: need.Category})
	others := make([]domain.Need, 0, len(sameCategory))
	for _, n := range sameCategory {
		if n.NeedID != needID {
			others = append(others, n)
		}
	}
	ranked := matching.RankNeeds(others, matching.SortRecent)
	if len(ranked) > RelatedLimit {
		ranked = ranked[:RelatedLimit]
	}
	return ranked, nil
}

// Get returns one need.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Need, error) {
	return s.Catalog.GetNeed(ctx, id)
}

// RecordView bumps the need's view counter with a single atomic UPDATE;
// never read-modify-write so concurrent viewers don't lose counts.
func (s *Service) RecordView(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&domain.Need{}).
		Where("need_id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNeedNotFound
	}
	return nil
}

func toJSONArray(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}
