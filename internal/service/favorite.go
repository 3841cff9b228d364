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

// FavoriteService handles a user's saved recipes
type FavoriteService struct {
	db          *gorm.DB
	invalidator SeedInvalidator
	log         *logger.Logger
}

// NewFavoriteService creates a new FavoriteService instance. invalidator may be nil.
func NewFavoriteService(db *gorm.DB, invalidator SeedInvalidator, log *logger.Logger) *FavoriteService {
	return &FavoriteService{
		db:          db,
		invalidator: invalidator,
		log:         log.WithComponent("favorites"),
	}
}

// ListFavorites returns every favorite of userID, newest first
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	favorites := []model.Favorite{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, recipe_name ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, storeErr("list favorites", err)
	}
	return favorites, nil
}

// AddFavorite saves a recipe for userID. When the catalog already has a
// recipe with that title, the favorite copies the catalog fields; otherwise a
// catalog recipe is created from the input and flagged recommended.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID uuid.UUID, input *types.FavoriteRecipeInput) (*model.Favorite, error) {
	if input == nil || input.RecipeName == "" {
		return nil, fmt.Errorf("%w: recipeName is required", ErrInvalidInput)
	}

	var (
		favorite model.Favorite
		created  bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Favorite{}).
			Where("user_id = ? AND recipe_name = ?", userID, input.RecipeName).
			Count(&count).Error; err != nil {
			return storeErr("check favorite", err)
		}
		if count > 0 {
			return ErrFavoriteExists
		}

		var recipe model.Recipe
		err := tx.Where("title = ?", input.RecipeName).First(&recipe).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			recipe = recipeFromFavoriteInput(input)
			if err := tx.Create(&recipe).Error; err != nil {
				return storeErr("create recipe", err)
			}
			created = true
		case err != nil:
			return storeErr("find recipe", err)
		}

		favorite = model.Favorite{
			UserID:          userID,
			RecipeName:      recipe.Title,
			Description:     recipe.Description,
			Cuisine:         recipe.Cuisine,
			Tags:            recipe.Tags,
			Servings:        recipe.Servings,
			PrepTimeMinutes: recipe.PrepTimeMinutes,
			CookTimeMinutes: recipe.CookTimeMinutes,
			Ingredients:     nonNil(recipe.Ingredients),
			Instructions:    nonNil(recipe.Instructions),
			ChefTips:        nonNil(recipe.ChefTips),
		}
		if err := tx.Create(&favorite).Error; err != nil {
			return storeErr("create favorite", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.invalidateSeeds(ctx)
	}
	s.log.Info().
		Str("user_id", userID.String()).
		Str("recipe_name", favorite.RecipeName).
		Bool("catalog_created", created).
		Msg("favorite added")
	return &favorite, nil
}

// RemoveFavorite deletes the favorite named recipeName from userID's list
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeName string) error {
	if recipeName == "" {
		return fmt.Errorf("%w: recipeName is required", ErrInvalidInput)
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_name = ?", userID, recipeName).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return storeErr("delete favorite", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *FavoriteService) invalidateSeeds(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateSeeds(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate seed cache")
	}
}

func recipeFromFavoriteInput(input *types.FavoriteRecipeInput) model.Recipe {
	return model.Recipe{
		Title:           input.RecipeName,
		Description:     input.Description,
		Cuisine:         input.Cuisine,
		Tags:            input.Tags,
		Servings:        input.Servings,
		PrepTimeMinutes: input.PrepTimeMinutes,
		CookTimeMinutes: input.CookTimeMinutes,
		Ingredients:     nonNil(input.Ingredients),
		Instructions:    nonNil(input.Instructions),
		ChefTips:        nonNil(input.ChefTips),
		Recommended:     true,
	}
}
