package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
)

// Score weights. The favorite penalty must outweigh any realistic sum of the
// positive terms so an already-saved recipe never makes a top-N cut.
const (
	dietMatchPoints       = 10
	sharedTagPoints       = 3
	sharedIngredientPoint = 2
	cuisineMatchPoints    = 5
	alreadyFavoritePoints = -1000
)

// ScoredRecipe is a recipe copy carrying its relevance score.
type ScoredRecipe struct {
	model.Recipe
	Score int
}

// ScoreRecipe rates how well recipe fits a user with the given diet and
// favorites. Higher is better; the result is unnormalized.
func ScoreRecipe(recipe model.Recipe, userDiet string, favorites []model.Favorite) int {
	score := 0

	if userDiet != "" && recipe.Diet != nil && *recipe.Diet == userDiet {
		score += dietMatchPoints
	}

	alreadyFavorite := false
	for _, fav := range favorites {
		if recipe.Tags != nil && fav.Tags != nil {
			for _, tag := range recipe.Tags {
				if containsString(fav.Tags, tag) {
					score += sharedTagPoints
				}
			}
		}

		if len(recipe.Ingredients) > 0 && len(fav.Ingredients) > 0 {
			favIngredients := make(map[string]struct{}, len(fav.Ingredients))
			for _, ing := range fav.Ingredients {
				favIngredients[ing.Name] = struct{}{}
			}
			for _, ing := range recipe.Ingredients {
				if _, ok := favIngredients[ing.Name]; ok {
					score += sharedIngredientPoint
				}
			}
		}

		if recipe.Cuisine != nil && fav.Cuisine != nil && *recipe.Cuisine == *fav.Cuisine {
			score += cuisineMatchPoints
		}

		if (recipe.ID != uuid.Nil && recipe.ID == fav.ID) || recipe.Title == fav.RecipeName {
			alreadyFavorite = true
		}
	}

	if alreadyFavorite {
		score += alreadyFavoritePoints
	}
	return score
}

// RankRecipes scores every recipe and returns the best topN, highest score
// first. Equal scores keep their input order. The input is not modified.
func RankRecipes(recipes []model.Recipe, userDiet string, favorites []model.Favorite, topN int) []ScoredRecipe {
	scored := make([]ScoredRecipe, len(recipes))
	for i, r := range recipes {
		scored[i] = ScoredRecipe{Recipe: r, Score: ScoreRecipe(r, userDiet, favorites)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topN < 0 {
		topN = 0
	}
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
