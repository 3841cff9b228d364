package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/internal/types"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
	"gorm.io/gorm"
)

// RecipeFilter selects a recipe by id or, failing that, by exact title.
type RecipeFilter struct {
	RecipeID   *uuid.UUID
	RecipeName string
}

// ReviewList is the reviews of one recipe with their aggregate rating.
type ReviewList struct {
	Reviews       []model.Review `json:"reviews"`
	AverageRating *float64       `json:"averageRating"`
	TotalReviews  int64          `json:"totalReviews"`
}

// ReviewService handles recipe reviews and ratings
type ReviewService struct {
	db          *gorm.DB
	invalidator SeedInvalidator
	log         *logger.Logger
}

// NewReviewService creates a new ReviewService instance. invalidator may be nil.
func NewReviewService(db *gorm.DB, invalidator SeedInvalidator, log *logger.Logger) *ReviewService {
	return &ReviewService{
		db:          db,
		invalidator: invalidator,
		log:         log.WithComponent("reviews"),
	}
}

// CreateReview stores a review by userID. The reviewed recipe is resolved
// from req.RecipeID or req.Recipe (by id, external id, then title) and is
// created when nothing matches. The rating is clamped to 1..5 and the recipe
// is promoted to the recommended seed pool.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *types.CreateReviewRequest) (*model.Review, error) {
	if req == nil || req.Rating == 0 || (req.RecipeID == nil && req.Recipe == nil) {
		return nil, fmt.Errorf("%w: rating and recipeId or recipe are required", ErrInvalidInput)
	}

	var review model.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeID, err := resolveReviewRecipe(tx, req)
		if err != nil {
			return err
		}

		review = model.Review{
			UserID:   userID,
			RecipeID: recipeID,
			Rating:   model.ClampRating(req.Rating),
			Title:    req.Title,
			Body:     req.Body,
		}
		if err := tx.Create(&review).Error; err != nil {
			return storeErr("create review", err)
		}

		if err := tx.Model(&model.Recipe{}).Where("id = ?", recipeID).Update("recommended", true).Error; err != nil {
			return storeErr("promote recipe", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateSeeds(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate seed cache")
		}
	}
	s.log.Info().
		Str("user_id", userID.String()).
		Str("recipe_id", review.RecipeID.String()).
		Int("rating", review.Rating).
		Msg("review created")
	return &review, nil
}

func resolveReviewRecipe(tx *gorm.DB, req *types.CreateReviewRequest) (uuid.UUID, error) {
	in := req.Recipe
	if in == nil {
		id, err := findRecipeID(tx, "id = ?", *req.RecipeID)
		if err != nil {
			return uuid.Nil, err
		}
		if id == uuid.Nil {
			return uuid.Nil, ErrRecipeNotFound
		}
		return id, nil
	}

	type lookup struct {
		query string
		arg   interface{}
	}
	var lookups []lookup
	if in.ID != nil {
		lookups = append(lookups, lookup{"id = ?", *in.ID})
	}
	if req.RecipeID != nil {
		lookups = append(lookups, lookup{"id = ?", *req.RecipeID})
	}
	if in.ExternalID != "" {
		lookups = append(lookups, lookup{"external_id = ?", in.ExternalID})
	}
	if in.Title != "" {
		lookups = append(lookups, lookup{"title = ?", in.Title})
	} else if in.RecipeName != "" {
		lookups = append(lookups, lookup{"title = ?", in.RecipeName})
	}
	for _, l := range lookups {
		id, err := findRecipeID(tx, l.query, l.arg)
		if err != nil {
			return uuid.Nil, err
		}
		if id != uuid.Nil {
			return id, nil
		}
	}

	title := in.Title
	if title == "" {
		title = in.RecipeName
	}
	if title == "" {
		title = "Untitled"
	}
	recipe := model.Recipe{Title: title, Description: in.Description}
	if in.ExternalID != "" {
		externalID := in.ExternalID
		recipe.ExternalID = &externalID
	}
	if err := tx.Create(&recipe).Error; err != nil {
		return uuid.Nil, storeErr("create recipe", err)
	}
	return recipe.ID, nil
}

// findRecipeID returns the id of the first recipe matching query, or
// uuid.Nil when there is none.
func findRecipeID(tx *gorm.DB, query string, arg interface{}) (uuid.UUID, error) {
	var recipe model.Recipe
	err := tx.Select("id").Where(query, arg).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, storeErr("find recipe", err)
	}
	return recipe.ID, nil
}

// ListReviews returns the reviews of one recipe, newest first, with the
// reviewer loaded. A recipe name that matches nothing yields an empty list.
func (s *ReviewService) ListReviews(ctx context.Context, filter RecipeFilter) (*ReviewList, error) {
	recipeID, err := s.resolveFilter(ctx, filter)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return &ReviewList{Reviews: []model.Review{}}, nil
		}
		return nil, err
	}

	reviews := []model.Review{}
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC, id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, storeErr("list reviews", err)
	}

	avg, count, err := s.aggregate(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &ReviewList{Reviews: reviews, AverageRating: avg, TotalReviews: count}, nil
}

// DeleteReview removes a review written by userID
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	var review model.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return storeErr("find review", err)
	}
	if review.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return storeErr("delete review", err)
	}
	return nil
}

// GetRating returns the average rating and review count of one recipe. A
// recipe name that matches nothing yields an empty summary with no recipe id.
func (s *ReviewService) GetRating(ctx context.Context, filter RecipeFilter) (*types.RatingSummary, error) {
	recipeID, err := s.resolveFilter(ctx, filter)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return &types.RatingSummary{}, nil
		}
		return nil, err
	}

	avg, count, err := s.aggregate(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &types.RatingSummary{RecipeID: &recipeID, AverageRating: avg, TotalReviews: count}, nil
}

func (s *ReviewService) resolveFilter(ctx context.Context, filter RecipeFilter) (uuid.UUID, error) {
	if filter.RecipeID != nil {
		return *filter.RecipeID, nil
	}
	if filter.RecipeName == "" {
		return uuid.Nil, fmt.Errorf("%w: recipeId or recipeName is required", ErrInvalidInput)
	}

	var recipe model.Recipe
	err := s.db.WithContext(ctx).Select("id").Where("title = ?", filter.RecipeName).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrRecipeNotFound
		}
		return uuid.Nil, storeErr("find recipe", err)
	}
	return recipe.ID, nil
}

func (s *ReviewService) aggregate(ctx context.Context, recipeID uuid.UUID) (*float64, int64, error) {
	var agg struct {
		Average *float64
		Total   int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(rating) AS average, COUNT(rating) AS total").
		Where("recipe_id = ?", recipeID).
		Scan(&agg).Error
	if err != nil {
		return nil, 0, storeErr("aggregate ratings", err)
	}
	return agg.Average, agg.Total, nil
}
