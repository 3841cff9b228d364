package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a user's private, denormalized copy of a recipe. It is keyed by
// RecipeName rather than by a foreign key into recipes.
type Favorite struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time        `gorm:"index" json:"createdAt"`
	UserID          uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_recipe" json:"userId"`
	RecipeName      string           `gorm:"size:255;not null;uniqueIndex:idx_favorites_user_recipe" json:"recipeName"`
	Description     string           `gorm:"type:text" json:"description"`
	Cuisine         *string          `gorm:"size:50" json:"cuisine,omitempty"`
	Tags            JSONBStringArray `gorm:"type:jsonb" json:"tags,omitempty"`
	Servings        *int             `json:"servings"`
	PrepTimeMinutes *int             `json:"prepTimeMinutes"`
	CookTimeMinutes *int             `json:"cookTimeMinutes"`
	Ingredients     Ingredients      `gorm:"type:jsonb" json:"ingredients"`
	Instructions    Instructions     `gorm:"type:jsonb" json:"instructions"`
	ChefTips        JSONBStringArray `gorm:"type:jsonb" json:"chefTips"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
