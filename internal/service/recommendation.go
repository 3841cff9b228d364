package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/internal/repository"
	"github.com/pageza/culinary-assistant/backend/internal/types"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
)

// RandSource hands out a fresh random generator for each call that needs one.
type RandSource func() *rand.Rand

// NewRandSource returns a RandSource whose generators are seeded independently.
func NewRandSource() RandSource {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// FixedRandSource returns a RandSource whose generators all start from the
// same seed, for reproducible picks.
func FixedRandSource(seed uint64) RandSource {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed))
	}
}

// RecommendationService assembles recipe suggestions from the recommended
// seed pool and the user's favorites
type RecommendationService struct {
	store CandidateStore
	cfg   config.RecommendConfig
	rand  RandSource
	log   *logger.Logger
}

// NewRecommendationService creates a new RecommendationService instance
func NewRecommendationService(store CandidateStore, cfg config.RecommendConfig, randSource RandSource, log *logger.Logger) *RecommendationService {
	if randSource == nil {
		randSource = NewRandSource()
	}
	return &RecommendationService{
		store: store,
		cfg:   cfg,
		rand:  randSource,
		log:   log.WithComponent("recommendation"),
	}
}

// Recommend returns up to limit recipes for userID.
//
// Without a user the newest seeds are returned as is. For an unknown user the
// same seeds are returned together with ErrUserNotFound, so callers can tell
// the two apart. Otherwise seeds the user already saved are dropped, the rest
// are ranked against the user's diet and favorites, and when the user has
// favorites one of them, picked at random, leads the list.
//
// Store failures are returned as *StoreError and never fall back to seeds.
func (s *RecommendationService) Recommend(ctx context.Context, userID *uuid.UUID, limit int) ([]types.RecipeView, error) {
	return s.recommend(ctx, userID, limit, recommendOptions{})
}

// RecommendPersonalized is Recommend for a signed-in user, with the seed pool
// first narrowed to the user's diet. A seed matches when its diet equals the
// user's diet or its title or description mentions it, ignoring case. Users
// without a diet see the unfiltered pool.
func (s *RecommendationService) RecommendPersonalized(ctx context.Context, userID uuid.UUID, limit int) ([]types.RecipeView, error) {
	return s.recommend(ctx, &userID, limit, recommendOptions{dietFilter: true})
}

type recommendOptions struct {
	dietFilter bool
}

func (s *RecommendationService) recommend(ctx context.Context, userID *uuid.UUID, limit int, opts recommendOptions) ([]types.RecipeView, error) {
	limit = s.clampLimit(limit)

	seeds, err := s.store.FindRecommendedSeeds(ctx, s.cfg.SeedPoolSize)
	if err != nil {
		return nil, storeErr("find recommended seeds", err)
	}

	if userID == nil {
		return seedViews(seeds, limit), nil
	}

	user, favorites, err := s.store.FindUserDietAndFavorites(ctx, *userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return seedViews(seeds, limit), fmt.Errorf("%w: %s", ErrUserNotFound, *userID)
		}
		return nil, storeErr("find user favorites", err)
	}

	diet := ""
	if user.Diet != nil {
		diet = *user.Diet
	}

	saved := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		saved[strings.ToLower(f.RecipeName)] = struct{}{}
	}
	lowerDiet := strings.ToLower(strings.TrimSpace(diet))
	pool := make([]model.Recipe, 0, len(seeds))
	for _, r := range seeds {
		if opts.dietFilter && lowerDiet != "" && !matchesDiet(r, lowerDiet) {
			continue
		}
		if _, ok := saved[strings.ToLower(r.Title)]; !ok {
			pool = append(pool, r)
		}
	}

	topN := limit
	if len(favorites) > 0 {
		topN = limit - 1
	}
	ranked := RankRecipes(pool, diet, favorites, topN)

	out := make([]types.RecipeView, 0, limit)
	if len(favorites) > 0 {
		rng := s.rand()
		pick := favorites[rng.IntN(len(favorites))]
		out = append(out, types.RecipeViewFromFavorite(pick))
	}
	for _, r := range ranked {
		view := types.RecipeViewFromRecipe(r.Recipe)
		score := r.Score
		view.Score = &score
		out = append(out, view)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Normalize()
	}

	s.log.Debug().
		Str("user_id", userID.String()).
		Int("seeds", len(seeds)).
		Int("pool", len(pool)).
		Bool("diet_filter", opts.dietFilter && lowerDiet != "").
		Int("favorites", len(favorites)).
		Int("returned", len(out)).
		Msg("recommendations assembled")
	return out, nil
}

func (s *RecommendationService) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}

// matchesDiet reports whether r suits lowerDiet, which must already be
// lower-cased.
func matchesDiet(r model.Recipe, lowerDiet string) bool {
	if r.Diet != nil && strings.ToLower(*r.Diet) == lowerDiet {
		return true
	}
	return strings.Contains(strings.ToLower(r.Description), lowerDiet) ||
		strings.Contains(strings.ToLower(r.Title), lowerDiet)
}

func seedViews(seeds []model.Recipe, limit int) []types.RecipeView {
	if len(seeds) > limit {
		seeds = seeds[:limit]
	}
	out := make([]types.RecipeView, len(seeds))
	for i, r := range seeds {
		out[i] = types.RecipeViewFromRecipe(r)
		out[i].Normalize()
	}
	return out
}
