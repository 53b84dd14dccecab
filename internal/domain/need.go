package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NeedStatus moves forward only: open -> in_progress -> completed,
// or open/in_progress -> cancelled.
type NeedStatus string

const (
	NeedOpen       NeedStatus = "open"
	NeedInProgress NeedStatus = "in_progress"
	NeedCompleted  NeedStatus = "completed"
	NeedCancelled  NeedStatus = "cancelled"
)

func ValidNeedStatus(s NeedStatus) bool {
	switch s {
	case NeedOpen, NeedInProgress, NeedCompleted, NeedCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionNeed reports whether a Need status change is allowed.
// Terminal states (completed, cancelled) admit no further transitions.
func CanTransitionNeed(from, to NeedStatus) bool {
	switch from {
	case NeedOpen:
		return to == NeedInProgress || to == NeedCancelled
	case NeedInProgress:
		return to == NeedCompleted || to == NeedCancelled
	default:
		return false
	}
}

type DeliveryMethod string

const (
	DeliveryShipping DeliveryMethod = "shipping"
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryBoth     DeliveryMethod = "both"
)

func ValidDeliveryMethod(m DeliveryMethod) bool {
	switch m {
	case DeliveryShipping, DeliveryPickup, DeliveryBoth:
		return true
	default:
		return false
	}
}

// Need is a buyer's request for a product or service. Producers bid
// against it with Entries.
type Need struct {
	NeedID                 uuid.UUID      `gorm:"column:need_id;type:uuid;primaryKey" json:"need_id"`
	UserID                 uuid.UUID      `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	Title                  string         `gorm:"column:title;not null" json:"title"`
	Description            string         `gorm:"column:description;not null" json:"description"`
	Category               string         `gorm:"column:category;not null;index" json:"category"`
	BudgetMin              int64          `gorm:"column:budget_min;not null" json:"budget_min"`
	BudgetMax              int64          `gorm:"column:budget_max;not null" json:"budget_max"`
	Deadline               time.Time      `gorm:"column:deadline;not null" json:"deadline"`
	Status                 NeedStatus     `gorm:"column:status;type:varchar(20);default:'open'" json:"status"`
	ViewCount              int64          `gorm:"column:view_count;not null;default:0" json:"view_count"`
	EntryCount             int64          `gorm:"column:entry_count;not null;default:0" json:"entry_count"`
	Tags                   datatypes.JSON `gorm:"column:tags;type:json" json:"tags"`
	IsUrgent               bool           `gorm:"column:is_urgent;not null;default:false" json:"is_urgent"`
	IsNegotiable           bool           `gorm:"column:is_negotiable;not null;default:false" json:"is_negotiable"`
	Location               *string        `gorm:"column:location" json:"location"`
	Quantity               *string        `gorm:"column:quantity" json:"quantity"`
	PreferredDelivery      DeliveryMethod `gorm:"column:preferred_delivery;type:varchar(10);default:'both'" json:"preferred_delivery"`
	Images                 datatypes.JSON `gorm:"column:images;type:json" json:"images"`
	AdditionalRequirements *string        `gorm:"column:additional_requirements" json:"additional_requirements"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
}

func (Need) TableName() string {
	return "Needs"
}

func (n *Need) BeforeCreate(tx *gorm.DB) error {
	if n.NeedID == uuid.Nil {
		n.NeedID = uuid.New()
	}
	return nil
}
