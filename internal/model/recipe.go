package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a catalog recipe visible to every user.
type Recipe struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
	Title           string           `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Diet            *string          `gorm:"size:50" json:"diet"`
	Cuisine         *string          `gorm:"size:50" json:"cuisine,omitempty"`
	Tags            JSONBStringArray `gorm:"type:jsonb" json:"tags,omitempty"`
	Servings        *int             `json:"servings"`
	PrepTimeMinutes *int             `json:"prepTimeMinutes"`
	CookTimeMinutes *int             `json:"cookTimeMinutes"`
	Ingredients     Ingredients      `gorm:"type:jsonb" json:"ingredients"`
	Instructions    Instructions     `gorm:"type:jsonb" json:"instructions"`
	ChefTips        JSONBStringArray `gorm:"type:jsonb" json:"chefTips"`
	Recommended     bool             `gorm:"not null;default:false;index" json:"recommended"`
	ExternalID      *string          `gorm:"size:255;index" json:"externalId,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an ID when the caller did not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
