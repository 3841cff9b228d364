package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/internal/types"
)

// CandidateStore is the read side that search and recommendations pull
// candidates from. Implemented by repository.GormCandidateStore and its
// Redis-backed decorator.
type CandidateStore interface {
	FindRecipesBySubstring(ctx context.Context, query string, limit int) ([]model.Recipe, error)
	FindRecipesBySimilarity(ctx context.Context, lowerQuery string, threshold float64, limit int) ([]model.Recipe, error)
	FindFavoritesBySubstring(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Favorite, error)
	FindFavoritesBySimilarity(ctx context.Context, userID uuid.UUID, lowerQuery string, threshold float64, limit int) ([]model.Favorite, error)
	FindRecommendedSeeds(ctx context.Context, limit int) ([]model.Recipe, error)
	FindUserDietAndFavorites(ctx context.Context, userID uuid.UUID) (*model.User, []model.Favorite, error)
}

// SeedInvalidator drops cached recommendation seeds after writes that change them.
type SeedInvalidator interface {
	InvalidateSeeds(ctx context.Context) error
}

// ISearchService defines the interface for recipe search
type ISearchService interface {
	Search(ctx context.Context, query string, userID *uuid.UUID) ([]types.SearchResult, error)
}

// IRecommendationService defines the interface for recipe recommendations
type IRecommendationService interface {
	Recommend(ctx context.Context, userID *uuid.UUID, limit int) ([]types.RecipeView, error)
	RecommendPersonalized(ctx context.Context, userID uuid.UUID, limit int) ([]types.RecipeView, error)
}

// IFavoriteService defines the interface for favorite operations
type IFavoriteService interface {
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, input *types.FavoriteRecipeInput) (*model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeName string) error
}

// IReviewService defines the interface for review and rating operations
type IReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*model.Review, error)
	ListReviews(ctx context.Context, filter RecipeFilter) (*ReviewList, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
	GetRating(ctx context.Context, filter RecipeFilter) (*types.RatingSummary, error)
}

// ITokenService defines the interface for bearer token handling
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}
