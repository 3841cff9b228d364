package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// GormCandidateStore reads search and recommendation candidates through GORM.
// On Postgres, fuzzy matching runs in the database with pg_trgm; other
// dialects score trigram similarity in process.
type GormCandidateStore struct {
	db *gorm.DB
}

// NewGormCandidateStore creates a new GormCandidateStore instance
func NewGormCandidateStore(db *gorm.DB) *GormCandidateStore {
	return &GormCandidateStore{db: db}
}

// Rows saved in one batch share created_at, so the name breaks ties.
const (
	recipeOrder   = "created_at DESC, title ASC"
	favoriteOrder = "created_at DESC, recipe_name ASC"
)

func (s *GormCandidateStore) isPostgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

// FindRecipesBySubstring returns catalog recipes whose title or description
// contains query, ignoring case, newest first.
func (s *GormCandidateStore) FindRecipesBySubstring(ctx context.Context, query string, limit int) ([]model.Recipe, error) {
	like := containsPattern(query)

	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like).
		Order(recipeOrder).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("find recipes by substring: %w", err)
	}
	return recipes, nil
}

// FindRecipesBySimilarity returns catalog recipes whose lower-cased title is
// more similar to lowerQuery than threshold, best match first, then newest.
func (s *GormCandidateStore) FindRecipesBySimilarity(ctx context.Context, lowerQuery string, threshold float64, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe

	if s.isPostgres() {
		err := s.db.WithContext(ctx).
			Where("similarity(LOWER(title), ?) > ?", lowerQuery, threshold).
			Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "similarity(LOWER(title), ?) DESC, " + recipeOrder, Vars: []interface{}{lowerQuery}},
			}).
			Limit(limit).
			Find(&recipes).Error
		if err != nil {
			return nil, fmt.Errorf("find recipes by similarity: %w", err)
		}
		return recipes, nil
	}

	if err := s.db.WithContext(ctx).Order(recipeOrder).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("find recipes by similarity: %w", err)
	}
	return rankBySimilarity(recipes, func(r model.Recipe) string { return r.Title }, lowerQuery, threshold, limit), nil
}

// FindFavoritesBySubstring is FindRecipesBySubstring over one user's
// favorites, matching recipe_name instead of title.
func (s *GormCandidateStore) FindFavoritesBySubstring(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Favorite, error) {
	like := containsPattern(query)

	var favorites []model.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(`(LOWER(recipe_name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like).
		Order(favoriteOrder).
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("find favorites by substring: %w", err)
	}
	return favorites, nil
}

// FindFavoritesBySimilarity is FindRecipesBySimilarity over one user's favorites.
func (s *GormCandidateStore) FindFavoritesBySimilarity(ctx context.Context, userID uuid.UUID, lowerQuery string, threshold float64, limit int) ([]model.Favorite, error) {
	var favorites []model.Favorite

	if s.isPostgres() {
		err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Where("similarity(LOWER(recipe_name), ?) > ?", lowerQuery, threshold).
			Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "similarity(LOWER(recipe_name), ?) DESC, " + favoriteOrder, Vars: []interface{}{lowerQuery}},
			}).
			Limit(limit).
			Find(&favorites).Error
		if err != nil {
			return nil, fmt.Errorf("find favorites by similarity: %w", err)
		}
		return favorites, nil
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(favoriteOrder).
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("find favorites by similarity: %w", err)
	}
	return rankBySimilarity(favorites, func(f model.Favorite) string { return f.RecipeName }, lowerQuery, threshold, limit), nil
}

// FindRecommendedSeeds returns up to limit recipes flagged recommended, newest first,
// then by title.
func (s *GormCandidateStore) FindRecommendedSeeds(ctx context.Context, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Where("recommended = ?", true).
		Order(recipeOrder).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("find recommended seeds: %w", err)
	}
	return recipes, nil
}

// FindUserDietAndFavorites loads a user and every favorite they saved. It
// returns ErrNotFound when the user does not exist.
func (s *GormCandidateStore) FindUserDietAndFavorites(ctx context.Context, userID uuid.UUID) (*model.User, []model.Favorite, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	var favorites []model.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(favoriteOrder).
		Find(&favorites).Error
	if err != nil {
		return nil, nil, fmt.Errorf("find favorites: %w", err)
	}
	return &user, favorites, nil
}

// rankBySimilarity filters rows above threshold and orders them by similarity
// descending. rows must already be in recipeOrder or favoriteOrder; the
// stable sort keeps that as the tie-break.
func rankBySimilarity[T any](rows []T, key func(T) string, lowerQuery string, threshold float64, limit int) []T {
	type scored struct {
		row T
		sim float64
	}
	var matches []scored
	for _, row := range rows {
		if sim := Similarity(strings.ToLower(key(row)), lowerQuery); sim > threshold {
			matches = append(matches, scored{row: row, sim: sim})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].sim > matches[j].sim
	})
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.row
	}
	return out
}

// containsPattern builds a case-insensitive LIKE pattern, escaping wildcards
// the user typed.
func containsPattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}
