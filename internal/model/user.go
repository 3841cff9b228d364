package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User carries only what the recommendation core reads: identity and diet.
type User struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255" json:"name"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Diet      *string        `gorm:"size:50" json:"diet"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Diets lists the preferences offered at registration.
var Diets = []string{
	"Vegetarian",
	"Vegan",
	"Keto",
	"Paleo",
	"Gluten-Free",
	"Non-Vegetarian",
}
