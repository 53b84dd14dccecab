package router

import (
	entrysvc "dachioku-backend/internal/application/entries"
	needsvc "dachioku-backend/internal/application/needs"
	"dachioku-backend/internal/catalog"
	"dachioku-backend/internal/config"
	"dachioku-backend/internal/infrastructure/cache"
	"dachioku-backend/internal/infrastructure/database"
	entryhandler "dachioku-backend/internal/interfaces/handlers/entries"
	healthhandler "dachioku-backend/internal/interfaces/handlers/health"
	needhandler "dachioku-backend/internal/interfaces/handlers/needs"
	userhandler "dachioku-backend/internal/interfaces/handlers/users"
	"dachioku-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and routes.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	rdb, err := cache.Open(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}

	hh := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health", hh.Check)

	if db != nil {
		store := catalog.NewGormStore(db)
		viewCache := cache.New(rdb)

		ns := needsvc.NewService(db, store, viewCache)
		nh := &needhandler.Handlers{Service: ns}

		es := entrysvc.NewService(db, store, viewCache)
		eh := &entryhandler.Handlers{Service: es}

		uh := &userhandler.Handlers{Catalog: store}

		ng := app.Group("/api/v1/needs")
		ng.Get("/", nh.GetAllNeeds)
		ng.Post("/", nh.CreateNeed)
		ng.Get("/feed", nh.GetFeed)
		ng.Get("/my", nh.GetMyNeeds)
		ng.Get("/:id", nh.GetNeedByID)
		ng.Get("/:id/related", nh.GetRelatedNeeds)
		ng.Get("/:id/entries", eh.GetEntriesForNeed)

		eg := app.Group("/api/v1/entries")
		eg.Post("/", eh.SubmitEntry)
		eg.Get("/:id", eh.GetEntryByID)
		eg.Post("/:id/accept", eh.AcceptEntry)
		eg.Post("/:id/reject", eh.RejectEntry)

		app.Get("/api/v1/users/:id", uh.GetUserByID)
	}

	return app, db, rdb, nil
}
