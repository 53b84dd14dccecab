package catalog

import (
	"context"
	"errors"

	"dachioku-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore backs the catalog with a GORM database.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ListNeeds(ctx context.Context) ([]domain.Need, error) {
	var needs []domain.Need
	if err := s.DB.WithContext(ctx).Find(&needs).Error; err != nil {
		return nil, err
	}
	return needs, nil
}

func (s *GormStore) ListEntries(ctx context.Context, needID uuid.UUID) ([]domain.Entry, error) {
	var entries []domain.Entry
	q := s.DB.WithContext(ctx)
	if needID != uuid.Nil {
		q = q.Where("need_id = ?", needID)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormStore) GetNeed(ctx context.Context, id uuid.UUID) (*domain.Need, error) {
	var need domain.Need
	if err := s.DB.WithContext(ctx).Where("need_id = ?", id).First(&need).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNeedNotFound
		}
		return nil, err
	}
	return &need, nil
}

func (s *GormStore) GetEntry(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	var entry domain.Entry
	if err := s.DB.WithContext(ctx).Where("entry_id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *GormStore) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
