package needs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	needsvc "dachioku-backend/internal/application/needs"
	"dachioku-backend/internal/catalog"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/infrastructure/cache"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNeedsTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Need{}, &domain.Entry{}))

	svc := needsvc.NewService(db, catalog.NewGormStore(db), cache.New(nil))
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Get("/needs", h.GetAllNeeds)
	app.Post("/needs", h.CreateNeed)
	app.Get("/needs/feed", h.GetFeed)
	app.Get("/needs/my", h.GetMyNeeds)
	app.Get("/needs/:id", h.GetNeedByID)
	app.Get("/needs/:id/related", h.GetRelatedNeeds)
	return app, db
}

func createNeedBody(userID string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":     userID,
		"title":       "ダイニングテーブルが欲しい",
		"description": "4人家族用",
		"category":    "1",
		"budget_min":  50000,
		"budget_max":  150000,
		"deadline":    time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		"tags":        []string{"家具", "木製"},
	}
}

func TestCreateNeed_Success(t *testing.T) {
	app, db := setupNeedsTest(t)

	raw, _ := json.Marshal(createNeedBody(uuid.New().String()))
	req := httptest.NewRequest("POST", "/needs", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])

	var count int64
	db.Model(&domain.Need{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateNeed_InvalidBudgetIs400(t *testing.T) {
	app, _ := setupNeedsTest(t)

	body := createNeedBody(uuid.New().String())
	body["budget_min"] = 200000 // above max
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/needs", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "error", result["status"])
}

func TestCreateNeed_BadUserIDIs400(t *testing.T) {
	app, _ := setupNeedsTest(t)

	body := createNeedBody("not-a-uuid")
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/needs", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetAllNeeds_FiltersAndSorts(t *testing.T) {
	app, db := setupNeedsTest(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		cat := "1"
		if i%2 == 0 {
			cat = "4"
		}
		require.NoError(t, db.Create(&domain.Need{
			UserID: uuid.New(), Title: fmt.Sprintf("need %d", i), Description: "d",
			Category: cat, Deadline: base, Status: domain.NeedOpen,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	req := httptest.NewRequest("GET", "/needs?category=4&sort=recent&limit=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Status string `json:"status"`
		Data   []struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Data, 2)
	assert.Equal(t, "need 4", result.Data[0].Title)
	assert.Equal(t, "need 2", result.Data[1].Title)
}

func TestGetNeedByID_NotFoundIs404(t *testing.T) {
	app, _ := setupNeedsTest(t)

	req := httptest.NewRequest("GET", "/needs/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetNeedByID_RecordsView(t *testing.T) {
	app, db := setupNeedsTest(t)

	need := domain.Need{
		UserID: uuid.New(), Title: "t", Description: "d", Category: "1",
		Deadline: time.Now(), Status: domain.NeedOpen,
	}
	require.NoError(t, db.Create(&need).Error)

	req := httptest.NewRequest("GET", "/needs/"+need.NeedID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var reloaded domain.Need
	require.NoError(t, db.Where("need_id = ?", need.NeedID).First(&reloaded).Error)
	assert.Equal(t, int64(1), reloaded.ViewCount)
}

func TestGetMyNeeds_RequiresUserID(t *testing.T) {
	app, _ := setupNeedsTest(t)

	req := httptest.NewRequest("GET", "/needs/my", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
