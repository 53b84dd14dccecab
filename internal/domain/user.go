package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is read-only reference data for this service: requester/bidder
// identity shown alongside needs and entries. Account management lives
// elsewhere.
type User struct {
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Username    string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	DisplayName string    `gorm:"column:display_name;not null" json:"display_name"`
	Avatar      *string   `gorm:"column:avatar" json:"avatar"`
	Bio         string    `gorm:"column:bio" json:"bio"`
	Rating      float64   `gorm:"column:rating;not null;default:0" json:"rating"`
	IsVerified  bool      `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
