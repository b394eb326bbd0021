package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds per-account metadata. Its primary key is the account id,
// so the relationship to User is strictly one-to-one.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	AvatarURL *string   `gorm:"size:512" json:"avatar_url"`
}

func (Profile) TableName() string {
	return "profiles"
}
