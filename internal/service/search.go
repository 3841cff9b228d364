package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/internal/types"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// SearchService merges catalog and favorite matches for a free-text query
type SearchService struct {
	store CandidateStore
	cfg   config.SearchConfig
	log   *logger.Logger
}

// NewSearchService creates a new SearchService instance
func NewSearchService(store CandidateStore, cfg config.SearchConfig, log *logger.Logger) *SearchService {
	return &SearchService{
		store: store,
		cfg:   cfg,
		log:   log.WithComponent("search"),
	}
}

// Search returns up to ResultLimit results for query. With a user id, that
// user's favorites are searched too and listed first; a catalog recipe with
// the same name as a favorite is dropped in favor of the favorite.
//
// An empty query yields an empty result. A store failure also yields an empty
// result, together with an error wrapping ErrSearchFailed.
func (s *SearchService) Search(ctx context.Context, query string, userID *uuid.UUID) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []types.SearchResult{}, nil
	}

	var (
		recipes   []model.Recipe
		favorites []model.Favorite
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.searchRecipes(gctx, query)
		return err
	})
	if userID != nil {
		uid := *userID
		g.Go(func() error {
			var err error
			favorites, err = s.searchFavorites(gctx, uid, query)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("search degraded to empty result")
		return []types.SearchResult{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	return mergeSearchResults(favorites, recipes, s.cfg.ResultLimit), nil
}

// searchRecipes runs the substring pass and, when it finds too little, the
// fuzzy pass. A non-empty fuzzy result replaces the substring one.
func (s *SearchService) searchRecipes(ctx context.Context, query string) ([]model.Recipe, error) {
	rows, err := s.store.FindRecipesBySubstring(ctx, query, s.cfg.ResultLimit)
	if err != nil {
		return nil, storeErr("find recipes by substring", err)
	}
	if len(rows) >= s.cfg.MinExactResults {
		return rows, nil
	}

	fuzzy, err := s.store.FindRecipesBySimilarity(ctx, strings.ToLower(query), s.cfg.FuzzyThreshold, s.cfg.ResultLimit)
	if err != nil {
		return nil, storeErr("find recipes by similarity", err)
	}
	if len(fuzzy) > 0 {
		return fuzzy, nil
	}
	return rows, nil
}

func (s *SearchService) searchFavorites(ctx context.Context, userID uuid.UUID, query string) ([]model.Favorite, error) {
	rows, err := s.store.FindFavoritesBySubstring(ctx, userID, query, s.cfg.ResultLimit)
	if err != nil {
		return nil, storeErr("find favorites by substring", err)
	}
	if len(rows) >= s.cfg.MinExactResults {
		return rows, nil
	}

	fuzzy, err := s.store.FindFavoritesBySimilarity(ctx, userID, strings.ToLower(query), s.cfg.FuzzyThreshold, s.cfg.ResultLimit)
	if err != nil {
		return nil, storeErr("find favorites by similarity", err)
	}
	if len(fuzzy) > 0 {
		return fuzzy, nil
	}
	return rows, nil
}

// mergeSearchResults lists favorites first, then catalog recipes whose name
// no favorite already claimed, capped at limit.
func mergeSearchResults(favorites []model.Favorite, recipes []model.Recipe, limit int) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(favorites)+len(recipes))
	seen := make(map[string]struct{}, len(favorites)+len(recipes))
	favoriteNames := make(map[string]struct{}, len(favorites))

	for _, f := range favorites {
		favoriteNames[strings.ToLower(f.RecipeName)] = struct{}{}
	}

	for _, f := range favorites {
		key := strings.ToLower(f.RecipeName)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, searchResultFromFavorite(f))
	}

	for _, r := range recipes {
		key := strings.ToLower(r.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		_, isFavorite := favoriteNames[key]
		results = append(results, searchResultFromRecipe(r, isFavorite))
	}

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func searchResultFromFavorite(f model.Favorite) types.SearchResult {
	return types.SearchResult{
		ID:              f.ID,
		Title:           f.RecipeName,
		Description:     f.Description,
		Servings:        f.Servings,
		PrepTimeMinutes: f.PrepTimeMinutes,
		CookTimeMinutes: f.CookTimeMinutes,
		Ingredients:     nonNil(f.Ingredients),
		Instructions:    nonNil(f.Instructions),
		ChefTips:        nonNil(f.ChefTips),
		IsFavorite:      true,
		Source:          types.SourceFavorite,
	}
}

func searchResultFromRecipe(r model.Recipe, isFavorite bool) types.SearchResult {
	return types.SearchResult{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Servings:        r.Servings,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Ingredients:     nonNil(r.Ingredients),
		Instructions:    nonNil(r.Instructions),
		ChefTips:        nonNil(r.ChefTips),
		IsFavorite:      isFavorite,
		Source:          types.SourceRecipe,
	}
}

func nonNil[S ~[]E, E any](s S) []E {
	if s == nil {
		return []E{}
	}
	return s
}
