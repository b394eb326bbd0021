package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is the user/recipe bookmark join pair. The composite primary key
// makes the pair unique, so repeated favoriting can never duplicate it.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
