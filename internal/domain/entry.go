package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryStatus: pending is the only non-terminal state; accepted and
// rejected are final.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryAccepted EntryStatus = "accepted"
	EntryRejected EntryStatus = "rejected"
)

func ValidEntryStatus(s EntryStatus) bool {
	switch s {
	case EntryPending, EntryAccepted, EntryRejected:
		return true
	default:
		return false
	}
}

// Entry is a producer's bid against exactly one Need. At most one Entry
// per Need may ever be accepted.
type Entry struct {
	EntryID               uuid.UUID      `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	NeedID                uuid.UUID      `gorm:"column:need_id;type:uuid;not null;index" json:"need_id"`
	UserID                uuid.UUID      `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	Description           string         `gorm:"column:description;not null" json:"description"`
	Price                 int64          `gorm:"column:price;not null" json:"price"`
	Images                datatypes.JSON `gorm:"column:images;type:json" json:"images"`
	Status                EntryStatus    `gorm:"column:status;type:varchar(10);default:'pending'" json:"status"`
	EstimatedDeliveryDate *time.Time     `gorm:"column:estimated_delivery_date" json:"estimated_delivery_date"`
	DeliveryMethod        DeliveryMethod `gorm:"column:delivery_method;type:varchar(10);default:'shipping'" json:"delivery_method"`
	ShippingCost          *int64         `gorm:"column:shipping_cost" json:"shipping_cost"`
	AdditionalNotes       *string        `gorm:"column:additional_notes" json:"additional_notes"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

func (Entry) TableName() string {
	return "Entries"
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	return nil
}
