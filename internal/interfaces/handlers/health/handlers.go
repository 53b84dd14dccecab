package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds dependencies for the health endpoint.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// Check GET /health — pings the database and Redis. Redis is optional;
// "disabled" is reported when no client is configured.
func (h *Handlers) Check(c *fiber.Ctx) error {
	deps := fiber.Map{}
	healthy := true

	if h.DB != nil {
		status := "up"
		if sqlDB, err := h.DB.DB(); err != nil {
			status, healthy = "down", false
		} else if err := sqlDB.Ping(); err != nil {
			status, healthy = "down", false
		}
		deps["database"] = status
	} else {
		deps["database"] = "disabled"
	}

	if h.Rdb != nil {
		status := "up"
		if err := h.Rdb.Ping(c.Context()).Err(); err != nil {
			status, healthy = "down", false
		}
		deps["redis"] = status
	} else {
		deps["redis"] = "disabled"
	}

	status := "ok"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"service":      "dachioku-api",
		"status":       status,
		"dependencies": deps,
	})
}
