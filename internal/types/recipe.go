package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
)

// SearchSource tells which table a search result came from.
type SearchSource string

const (
	SourceRecipe   SearchSource = "recipe"
	SourceFavorite SearchSource = "favorite"
)

// SearchResult is the normalized row returned by recipe search.
type SearchResult struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Servings        *int                `json:"servings"`
	PrepTimeMinutes *int                `json:"prepTimeMinutes"`
	CookTimeMinutes *int                `json:"cookTimeMinutes"`
	Ingredients     []model.Ingredient  `json:"ingredients"`
	Instructions    []model.Instruction `json:"instructions"`
	ChefTips        []string            `json:"chefTips"`
	IsFavorite      bool                `json:"isFavorite"`
	Source          SearchSource        `json:"source"`
}

// RecipeView is the recipe-shaped record returned by recommendations. Array
// fields are never null once Normalize has run.
type RecipeView struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Diet            *string             `json:"diet"`
	Servings        *int                `json:"servings"`
	PrepTimeMinutes *int                `json:"prepTimeMinutes"`
	CookTimeMinutes *int                `json:"cookTimeMinutes"`
	Ingredients     []model.Ingredient  `json:"ingredients"`
	Instructions    []model.Instruction `json:"instructions"`
	ChefTips        []string            `json:"chefTips"`
	Recommended     bool                `json:"recommended"`
	CreatedAt       time.Time           `json:"createdAt"`
	Score           *int                `json:"score,omitempty"`
}

// Normalize replaces absent array fields with empty ones.
func (v *RecipeView) Normalize() {
	if v.Ingredients == nil {
		v.Ingredients = []model.Ingredient{}
	}
	if v.Instructions == nil {
		v.Instructions = []model.Instruction{}
	}
	if v.ChefTips == nil {
		v.ChefTips = []string{}
	}
}

// RecipeViewFromRecipe copies a catalog recipe into its output shape.
func RecipeViewFromRecipe(r model.Recipe) RecipeView {
	return RecipeView{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Diet:            r.Diet,
		Servings:        r.Servings,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		ChefTips:        r.ChefTips,
		Recommended:     r.Recommended,
		CreatedAt:       r.CreatedAt,
	}
}

// RecipeViewFromFavorite maps a favorite into recipe shape. Favorites carry no
// diet and are never flagged as recommended.
func RecipeViewFromFavorite(f model.Favorite) RecipeView {
	return RecipeView{
		ID:              f.ID,
		Title:           f.RecipeName,
		Description:     f.Description,
		Servings:        f.Servings,
		PrepTimeMinutes: f.PrepTimeMinutes,
		CookTimeMinutes: f.CookTimeMinutes,
		Ingredients:     f.Ingredients,
		Instructions:    f.Instructions,
		ChefTips:        f.ChefTips,
		Recommended:     false,
		CreatedAt:       f.CreatedAt,
	}
}
