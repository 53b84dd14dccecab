package entries

import (
	"time"

	entrysvc "dachioku-backend/internal/application/entries"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/matching"
	"dachioku-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles entry lifecycle endpoints.
type Handlers struct {
	Service *entrysvc.Service
}

type submitEntryRequest struct {
	NeedID                string   `json:"need_id"`
	UserID                string   `json:"user_id"`
	Description           string   `json:"description"`
	Price                 int64    `json:"price"`
	Images                []string `json:"images"`
	EstimatedDeliveryDate *string  `json:"estimated_delivery_date"`
	DeliveryMethod        string   `json:"delivery_method"`
	ShippingCost          *int64   `json:"shipping_cost"`
	AdditionalNotes       *string  `json:"additional_notes"`
}

// SubmitEntry POST /api/v1/entries
func (h *Handlers) SubmitEntry(c *fiber.Ctx) error {
	var req submitEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	needID, err := uuid.Parse(req.NeedID)
	if err != nil {
		return response.Error(c, "Invalid need_id", fiber.StatusBadRequest, nil)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return response.Error(c, "Invalid user_id", fiber.StatusBadRequest, nil)
	}
	var estimated *time.Time
	if req.EstimatedDeliveryDate != nil && *req.EstimatedDeliveryDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.EstimatedDeliveryDate)
		if err != nil {
			return response.Error(c, "Invalid estimated_delivery_date, expected RFC3339", fiber.StatusBadRequest, nil)
		}
		estimated = &parsed
	}

	entry, err := h.Service.Submit(c.Context(), entrysvc.SubmitInput{
		NeedID:                needID,
		UserID:                userID,
		Description:           req.Description,
		Price:                 req.Price,
		Images:                req.Images,
		EstimatedDeliveryDate: estimated,
		DeliveryMethod:        domain.DeliveryMethod(req.DeliveryMethod),
		ShippingCost:          req.ShippingCost,
		AdditionalNotes:       req.AdditionalNotes,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.SuccessCreated(c, "Entry submitted successfully", entry, nil)
}

// GetEntriesForNeed GET /api/v1/needs/:id/entries?sort=
func (h *Handlers) GetEntriesForNeed(c *fiber.Ctx) error {
	needID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid need id", fiber.StatusBadRequest, nil)
	}
	entries, err := h.Service.ListForNeed(c.Context(), needID, matching.ParseSortKey(c.Query("sort")))
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Entries fetched successfully", entries, fiber.Map{"count": len(entries)})
}

// GetEntryByID GET /api/v1/entries/:id
func (h *Handlers) GetEntryByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid entry id", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Entry fetched successfully", detail, nil)
}

// AcceptEntry POST /api/v1/entries/:id/accept
func (h *Handlers) AcceptEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid entry id", fiber.StatusBadRequest, nil)
	}
	entry, err := h.Service.Accept(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Entry accepted successfully", entry, nil)
}

// RejectEntry POST /api/v1/entries/:id/reject
func (h *Handlers) RejectEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid entry id", fiber.StatusBadRequest, nil)
	}
	entry, err := h.Service.Reject(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Entry rejected successfully", entry, nil)
}
