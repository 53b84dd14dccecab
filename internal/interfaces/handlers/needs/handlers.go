package needs

import (
	"strconv"
	"time"

	needsvc "dachioku-backend/internal/application/needs"
	"dachioku-backend/internal/domain"
	"dachioku-backend/internal/matching"
	"dachioku-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles need endpoints.
type Handlers struct {
	Service *needsvc.Service
}

type createNeedRequest struct {
	UserID                 string   `json:"user_id"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	Category               string   `json:"category"`
	BudgetMin              int64    `json:"budget_min"`
	BudgetMax              int64    `json:"budget_max"`
	Deadline               string   `json:"deadline"`
	Tags                   []string `json:"tags"`
	IsUrgent               bool     `json:"is_urgent"`
	IsNegotiable           bool     `json:"is_negotiable"`
	Location               *string  `json:"location"`
	Quantity               *string  `json:"quantity"`
	PreferredDelivery      string   `json:"preferred_delivery"`
	Images                 []string `json:"images"`
	AdditionalRequirements *string  `json:"additional_requirements"`
}

// CreateNeed POST /api/v1/needs
func (h *Handlers) CreateNeed(c *fiber.Ctx) error {
	var req createNeedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return response.Error(c, "Invalid user_id", fiber.StatusBadRequest, nil)
	}
	var deadline time.Time
	if req.Deadline != "" {
		deadline, err = time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return response.Error(c, "Invalid deadline, expected RFC3339", fiber.StatusBadRequest, nil)
		}
	}

	need, err := h.Service.Create(c.Context(), needsvc.CreateInput{
		UserID:                 userID,
		Title:                  req.Title,
		Description:            req.Description,
		Category:               req.Category,
		BudgetMin:              req.BudgetMin,
		BudgetMax:              req.BudgetMax,
		Deadline:               deadline,
		Tags:                   req.Tags,
		IsUrgent:               req.IsUrgent,
		IsNegotiable:           req.IsNegotiable,
		Location:               req.Location,
		Quantity:               req.Quantity,
		PreferredDelivery:      domain.DeliveryMethod(req.PreferredDelivery),
		Images:                 req.Images,
		AdditionalRequirements: req.AdditionalRequirements,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.SuccessCreated(c, "Need created successfully", need, nil)
}

// GetAllNeeds GET /api/v1/needs?q=&category=&sort=&limit=
func (h *Handlers) GetAllNeeds(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return response.Error(c, "Invalid limit", fiber.StatusBadRequest, nil)
		}
		limit = parsed
	}
	needs, err := h.Service.Search(c.Context(), c.Query("q"), c.Query("category"), matching.ParseSortKey(c.Query("sort")), limit)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Needs fetched successfully", needs, fiber.Map{"count": len(needs)})
}

// GetFeed GET /api/v1/needs/feed?category=
func (h *Handlers) GetFeed(c *fiber.Ctx) error {
	feed, err := h.Service.Feed(c.Context(), c.Query("category"))
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Feed fetched successfully", feed, nil)
}

// GetMyNeeds GET /api/v1/needs/my?user_id=
func (h *Handlers) GetMyNeeds(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return response.Error(c, "Invalid user_id", fiber.StatusBadRequest, nil)
	}
	needs, err := h.Service.ListByOwner(c.Context(), userID)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Needs fetched successfully", needs, fiber.Map{"count": len(needs)})
}

// GetNeedByID GET /api/v1/needs/:id — fetch detail and record the view.
func (h *Handlers) GetNeedByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid need id", fiber.StatusBadRequest, nil)
	}
	need, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	// View tracking is best effort; the detail response must not fail on it.
	_ = h.Service.RecordView(c.Context(), id)
	return response.Success(c, "Need fetched successfully", need, nil)
}

// GetRelatedNeeds GET /api/v1/needs/:id/related
func (h *Handlers) GetRelatedNeeds(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid need id", fiber.StatusBadRequest, nil)
	}
	related, err := h.Service.Related(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}
	return response.Success(c, "Related needs fetched successfully", related, nil)
}
