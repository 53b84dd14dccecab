package users

import (
	"dachioku-backend/internal/catalog"
	"dachioku-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers serves the read-only user reference data shown next to needs
// and entries.
type Handlers struct {
	Catalog catalog.Store
}

// GetUserByID GET /api/v1/users/:id
func (h *Handlers) GetUserByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	user, err := h.Catalog.GetUser(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "User fetched successfully", user, nil)
}
