package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/culinary-assistant/backend/internal/model"
)

//go:embed seed_recipes.json
var builtinSeeds []byte

// seedRecipe is one entry of a seed file.
type seedRecipe struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Diet            string              `json:"diet"`
	Cuisine         string              `json:"cuisine"`
	Tags            []string            `json:"tags"`
	Servings        *int                `json:"servings"`
	PrepTimeMinutes *int                `json:"prepTimeMinutes"`
	CookTimeMinutes *int                `json:"cookTimeMinutes"`
	Ingredients     []model.Ingredient  `json:"ingredients"`
	Instructions    []model.Instruction `json:"instructions"`
	ChefTips        []string            `json:"chefTips"`
}

// parseSeeds decodes a seed file into catalog recipes flagged as recommended.
func parseSeeds(data []byte) ([]model.Recipe, error) {
	var entries []seedRecipe
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return nil, fmt.Errorf("seed %d: title is required", i)
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("seed %d: duplicate title %q", i, title)
		}
		seen[key] = struct{}{}
		for name, v := range map[string]*int{"servings": e.Servings, "prepTimeMinutes": e.PrepTimeMinutes, "cookTimeMinutes": e.CookTimeMinutes} {
			if v != nil && *v < 0 {
				return nil, fmt.Errorf("seed %q: %s must not be negative", title, name)
			}
		}

		recipes = append(recipes, model.Recipe{
			Title:           title,
			Description:     e.Description,
			Diet:            optional(e.Diet),
			Cuisine:         optional(e.Cuisine),
			Tags:            e.Tags,
			Servings:        e.Servings,
			PrepTimeMinutes: e.PrepTimeMinutes,
			CookTimeMinutes: e.CookTimeMinutes,
			Ingredients:     e.Ingredients,
			Instructions:    e.Instructions,
			ChefTips:        e.ChefTips,
			Recommended:     true,
		})
	}
	return recipes, nil
}

// upsertSeeds inserts recipes keyed by title, refreshing the content of
// titles that already exist. Creation times of existing rows are kept.
//
// New rows get creation times one second apart in reverse file order, so the
// newest-first seed pool is served in the order the file lists them.
func upsertSeeds(ctx context.Context, db *gorm.DB, recipes []model.Recipe) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}
	now := time.Now().UTC().Truncate(time.Second)
	for i := range recipes {
		if recipes[i].CreatedAt.IsZero() {
			recipes[i].CreatedAt = now.Add(-time.Duration(i) * time.Second)
		}
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "title"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "diet", "cuisine", "tags", "servings",
				"prep_time_minutes", "cook_time_minutes",
				"ingredients", "instructions", "chef_tips",
				"recommended", "updated_at",
			}),
		}).CreateInBatches(recipes, 50).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert seed recipes: %w", err)
	}
	return len(recipes), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
