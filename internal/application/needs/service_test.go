package needs

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"dachioku-backend/internal/catalog"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/infrastructure/cache"
	"dachioku-backend/internal/matching"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNeedsTest(t *testing.T) (*Service, *gorm.DB, *miniredis.Miniredis) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Need{}, &domain.Entry{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := catalog.NewGormStore(db)
	return NewService(db, store, cache.New(rdb)), db, mr
}

func validCreateInput() CreateInput {
	return CreateInput{
		UserID:      uuid.New(),
		Title:       "ダイニングテーブルが欲しい",
		Description: "4人家族用の木製テーブル",
		Category:    "1",
		BudgetMin:   50000,
		BudgetMax:   150000,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
		Tags:        []string{"家具", " 木製 ", "家具"},
	}
}

func TestCreate_PersistsOpenNeedWithNormalizedTags(t *testing.T) {
	s, db, _ := setupNeedsTest(t)

	need, err := s.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, domain.NeedOpen, need.Status)
	assert.Equal(t, domain.DeliveryBoth, need.PreferredDelivery)

	var reloaded domain.Need
	require.NoError(t, db.Where("need_id = ?", need.NeedID).First(&reloaded).Error)

	var tags []string
	require.NoError(t, json.Unmarshal(reloaded.Tags, &tags))
	assert.Equal(t, []string{"家具", "木製"}, tags)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	s, _, _ := setupNeedsTest(t)

	in := validCreateInput()
	in.BudgetMin = 200000 // min > max
	_, err := s.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	in = validCreateInput()
	in.Category = "99"
	_, err = s.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	in = validCreateInput()
	in.Images = []string{"a", "b", "c", "d", "e", "f"}
	_, err = s.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestFeed_TopFiveNewestFirst(t *testing.T) {
	s, db, _ := setupNeedsTest(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		need := domain.Need{
			UserID: uuid.New(), Title: fmt.Sprintf("need %d", i), Description: "d",
			Category: "1", Deadline: base, Status: domain.NeedOpen,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&need).Error)
	}

	feed, err := s.Feed(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, feed, FeedLimit)
	assert.Equal(t, "need 7", feed[0].Title)
	assert.Equal(t, "need 3", feed[4].Title)
}

func TestFeed_CachedAndInvalidatedByCreate(t *testing.T) {
	s, _, mr := setupNeedsTest(t)

	_, err := s.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = s.Feed(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, mr.Exists(FeedCacheKey))

	_, err = s.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.False(t, mr.Exists(FeedCacheKey))
}

func TestFeed_CategoryScopedIsNotCached(t *testing.T) {
	s, _, mr := setupNeedsTest(t)

	in := validCreateInput()
	in.Category = "4"
	_, err := s.Create(context.Background(), in)
	require.NoError(t, err)

	feed, err := s.Feed(context.Background(), "4")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.False(t, mr.Exists(FeedCacheKey))
}

func TestSearch_FreeTextAndCategory(t *testing.T) {
	s, _, _ := setupNeedsTest(t)

	a := validCreateInput()
	a.Title = "手作りのベビー服"
	a.Category = "2"
	_, err := s.Create(context.Background(), a)
	require.NoError(t, err)

	b := validCreateInput()
	b.Title = "木製テーブル"
	_, err = s.Create(context.Background(), b)
	require.NoError(t, err)

	got, err := s.Search(context.Background(), "ベビー", "", matching.SortRecent, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "手作りのベビー服", got[0].Title)

	got, err = s.Search(context.Background(), "", "2", matching.SortRecent, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestListByOwner(t *testing.T) {
	s, _, _ := setupNeedsTest(t)

	owner := uuid.New()
	mine := validCreateInput()
	mine.UserID = owner
	_, err := s.Create(context.Background(), mine)
	require.NoError(t, err)
	_, err = s.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	got, err := s.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, owner, got[0].UserID)
}

func TestRelated_SameCategoryExcludingSelf(t *testing.T) {
	s, _, _ := setupNeedsTest(t)

	in := validCreateInput()
	in.Category = "4"
	self, err := s.Create(context.Background(), in)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		other := validCreateInput()
		other.Category = "4"
		_, err := s.Create(context.Background(), other)
		require.NoError(t, err)
	}
	unrelated := validCreateInput()
	unrelated.Category = "1"
	_, err = s.Create(context.Background(), unrelated)
	require.NoError(t, err)

	got, err := s.Related(context.Background(), self.NeedID)
	require.NoError(t, err)
	require.Len(t, got, RelatedLimit)
	for _, n := range got {
		assert.Equal(t, "4", n.Category)
		assert.NotEqual(t, self.NeedID, n.NeedID)
	}
}

func TestRecordView_AtomicIncrement(t *testing.T) {
	s, db, _ := setupNeedsTest(t)

	need, err := s.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	require.NoError(t, s.RecordView(context.Background(), need.NeedID))
	require.NoError(t, s.RecordView(context.Background(), need.NeedID))

	var reloaded domain.Need
	require.NoError(t, db.Where("need_id = ?", need.NeedID).First(&reloaded).Error)
	assert.Equal(t, int64(2), reloaded.ViewCount)

	assert.Equal(t, domain.ErrNeedNotFound, s.RecordView(context.Background(), uuid.New()))
}
