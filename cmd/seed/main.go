// Seed populates a development database with fake users, needs and
// entries, standing in for the mock catalog the mobile app ships with.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"dachioku-backend/internal/config"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/infrastructure/database"
	"dachioku-backend/internal/pkg/constants"

	gofakeit "github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required for seeding")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	gofakeit.Seed(0)

	users := make([]domain.User, 0, cfg.SeedUsers)
	for i := 0; i < cfg.SeedUsers; i++ {
		u := domain.User{
			Username:    fmt.Sprintf("%s%d", gofakeit.Username(), i),
			DisplayName: gofakeit.FirstName(),
			Bio:         gofakeit.Blurb(),
			Rating:      float64(rand.Intn(41)+10) / 10, // 1.0..5.0
			IsVerified:  rand.Intn(3) == 0,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal().Err(err).Msg("seed user failed")
		}
		users = append(users, u)
	}

	categoryIDs := make([]string, 0, len(constants.CategoryNames))
	for id := range constants.CategoryNames {
		categoryIDs = append(categoryIDs, id)
	}

	needCount, entryCount := 0, 0
	for i := 0; i < cfg.SeedNeeds; i++ {
		owner := users[rand.Intn(len(users))]
		budgetMin := int64(rand.Intn(20)+1) * 1000
		budgetMax := budgetMin + int64(rand.Intn(100)+1)*1000
		need := domain.Need{
			UserID:            owner.UserID,
			Title:             gofakeit.BuzzWord(),
			Description:       gofakeit.Blurb(),
			Category:          categoryIDs[rand.Intn(len(categoryIDs))],
			BudgetMin:         budgetMin,
			BudgetMax:         budgetMax,
			Deadline:          time.Now().Add(time.Duration(rand.Intn(30)+1) * 24 * time.Hour),
			Status:            domain.NeedOpen,
			ViewCount:         int64(rand.Intn(300)),
			Tags:              jsonStrings(gofakeit.BuzzWord(), gofakeit.BuzzWord()),
			IsUrgent:          rand.Intn(4) == 0,
			IsNegotiable:      rand.Intn(2) == 0,
			PreferredDelivery: domain.DeliveryBoth,
			Images:            jsonStrings(),
			CreatedAt:         time.Now().Add(-time.Duration(rand.Intn(14*24)) * time.Hour),
		}
		if err := db.Create(&need).Error; err != nil {
			log.Fatal().Err(err).Msg("seed need failed")
		}
		needCount++

		perNeed := 0
		for j := 0; j < rand.Intn(4); j++ {
			bidder := users[rand.Intn(len(users))]
			if bidder.UserID == owner.UserID {
				continue
			}
			entry := domain.Entry{
				NeedID:         need.NeedID,
				UserID:         bidder.UserID,
				Description:    gofakeit.Blurb(),
				Price:          budgetMin + int64(rand.Intn(int(budgetMax-budgetMin+1))),
				Images:         jsonStrings(),
				Status:         domain.EntryPending,
				DeliveryMethod: domain.DeliveryShipping,
				CreatedAt:      need.CreatedAt.Add(time.Duration(rand.Intn(48)+1) * time.Hour),
			}
			if err := db.Create(&entry).Error; err != nil {
				log.Fatal().Err(err).Msg("seed entry failed")
			}
			entryCount++
			perNeed++
		}
		if err := db.Model(&domain.Need{}).Where("need_id = ?", need.NeedID).
			Update("entry_count", perNeed).Error; err != nil {
			log.Fatal().Err(err).Msg("seed entry count failed")
		}
	}

	log.Info().Int("users", len(users)).Int("needs", needCount).Int("entries", entryCount).Msg("seed complete")
}

func jsonStrings(items ...string) datatypes.JSON {
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}
