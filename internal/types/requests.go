package types

import (
	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
)

// FavoriteRecipeInput is the recipe payload a client sends when saving a
// favorite. Only RecipeName is required.
type FavoriteRecipeInput struct {
	RecipeName      string              `json:"recipeName" binding:"required"`
	Description     string              `json:"description"`
	Cuisine         *string             `json:"cuisine"`
	Tags            []string            `json:"tags"`
	Servings        *int                `json:"servings"`
	PrepTimeMinutes *int                `json:"prepTimeMinutes"`
	CookTimeMinutes *int                `json:"cookTimeMinutes"`
	Ingredients     []model.Ingredient  `json:"ingredients"`
	Instructions    []model.Instruction `json:"instructions"`
	ChefTips        []string            `json:"chefTips"`
}

// AddFavoriteRequest represents the request body for saving a favorite
type AddFavoriteRequest struct {
	Recipe *FavoriteRecipeInput `json:"recipe" binding:"required"`
}

// RemoveFavoriteRequest represents the request body for deleting a favorite
type RemoveFavoriteRequest struct {
	RecipeName string `json:"recipeName" binding:"required"`
}

// ReviewRecipeInput identifies (or describes) the recipe a review is about.
type ReviewRecipeInput struct {
	ID          *uuid.UUID `json:"id"`
	ExternalID  string     `json:"externalId"`
	Title       string     `json:"title"`
	RecipeName  string     `json:"recipeName"`
	Description string     `json:"description"`
}

// CreateReviewRequest represents the request body for posting a review
type CreateReviewRequest struct {
	RecipeID *uuid.UUID         `json:"recipeId"`
	Rating   int                `json:"rating"`
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	Recipe   *ReviewRecipeInput `json:"recipe"`
}

// DeleteReviewRequest represents the request body for deleting a review
type DeleteReviewRequest struct {
	ReviewID uuid.UUID `json:"reviewId" binding:"required"`
}

// RatingSummary is the aggregate rating of one recipe.
type RatingSummary struct {
	RecipeID      *uuid.UUID `json:"recipeId"`
	AverageRating *float64   `json:"averageRating"`
	TotalReviews  int64      `json:"totalReviews"`
}
