package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/internal/repository"
	"github.com/pageza/culinary-assistant/backend/internal/types"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRecommendationService(store CandidateStore, seed uint64) *RecommendationService {
	return NewRecommendationService(store, config.DefaultRecommendConfig(), FixedRandSource(seed), logger.Nop())
}

func viewTitles(views []types.RecipeView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Title
	}
	return out
}

func TestRecommendAnonymousReturnsSeeds(t *testing.T) {
	store := new(MockCandidateStore)
	svc := newTestRecommendationService(store, 1)

	seeds := []model.Recipe{{Title: "C"}, {Title: "B"}, {Title: "A"}}
	store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)

	views, err := svc.Recommend(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, viewTitles(views))
	for _, v := range views {
		assert.NotNil(t, v.Ingredients)
		assert.NotNil(t, v.Instructions)
		assert.NotNil(t, v.ChefTips)
		assert.Nil(t, v.Score)
	}
	store.AssertNotCalled(t, "FindUserDietAndFavorites", mock.Anything, mock.Anything)
}

func TestRecommendDefaultLimit(t *testing.T) {
	store := new(MockCandidateStore)
	svc := newTestRecommendationService(store, 1)

	var seeds []model.Recipe
	for i := 0; i < 30; i++ {
		seeds = append(seeds, model.Recipe{Title: fmt.Sprintf("seed %d", i)})
	}
	store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)

	views, err := svc.Recommend(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Len(t, views, 10)

	views, err = svc.Recommend(context.Background(), nil, 500)
	require.NoError(t, err)
	assert.Len(t, views, 30, "capped by the seed pool, not only by MaxLimit")
}

func TestRecommendRanksByDietWithoutFavorites(t *testing.T) {
	store := new(MockCandidateStore)
	svc := newTestRecommendationService(store, 1)
	userID := uuid.New()

	seeds := []model.Recipe{
		{Title: "B", Diet: strPtr("Keto")},
		{Title: "A", Diet: strPtr("Vegan")},
	}
	store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
	store.On("FindUserDietAndFavorites", mock.Anything, userID).
		Return(&model.User{ID: userID, Diet: strPtr("Vegan")}, []model.Favorite{}, nil)

	views, err := svc.Recommend(context.Background(), &userID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, viewTitles(views))
	require.NotNil(t, views[0].Score)
	assert.Equal(t, 10, *views[0].Score)
	assert.Equal(t, 0, *views[1].Score)
}

func TestRecommendInjectsOneFavorite(t *testing.T) {
	store := new(MockCandidateStore)
	userID := uuid.New()

	seeds := []model.Recipe{
		{Title: "Paneer Tikka", Cuisine: strPtr("Indian")},
		{Title: "PALAK PANEER"},
		{Title: "Caesar Salad"},
		{Title: "Miso Soup"},
	}
	favorites := []model.Favorite{
		{ID: uuid.New(), RecipeName: "Palak Paneer", Cuisine: strPtr("Indian")},
		{ID: uuid.New(), RecipeName: "Chole"},
	}
	store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
	store.On("FindUserDietAndFavorites", mock.Anything, userID).
		Return(&model.User{ID: userID}, favorites, nil)

	for seed := uint64(0); seed < 20; seed++ {
		svc := newTestRecommendationService(store, seed)
		views, err := svc.Recommend(context.Background(), &userID, 3)
		require.NoError(t, err)
		require.Len(t, views, 3)

		first := views[0]
		assert.Contains(t, []string{"Palak Paneer", "Chole"}, first.Title)
		assert.Nil(t, first.Diet)
		assert.False(t, first.Recommended)
		assert.Nil(t, first.Score)

		// Ranked seeds follow; a saved recipe never reappears as a seed.
		assert.Equal(t, []string{"Paneer Tikka", "Caesar Salad"}, viewTitles(views[1:]))
		for _, v := range views[1:] {
			for _, f := range favorites {
				assert.NotEqual(t, strings.ToLower(f.RecipeName), strings.ToLower(v.Title))
			}
		}
	}
}

func TestRecommendPickIsDeterministicForASeed(t *testing.T) {
	store := new(MockCandidateStore)
	userID := uuid.New()

	var favorites []model.Favorite
	for i := 0; i < 10; i++ {
		favorites = append(favorites, model.Favorite{RecipeName: fmt.Sprintf("fav %d", i)})
	}
	store.On("FindRecommendedSeeds", mock.Anything, 50).Return([]model.Recipe{}, nil)
	store.On("FindUserDietAndFavorites", mock.Anything, userID).
		Return(&model.User{ID: userID}, favorites, nil)

	svc := newTestRecommendationService(store, 42)
	first, err := svc.Recommend(context.Background(), &userID, 5)
	require.NoError(t, err)
	require.Len(t, first, 1)

	for i := 0; i < 5; i++ {
		again, err := svc.Recommend(context.Background(), &userID, 5)
		require.NoError(t, err)
		assert.Equal(t, first[0].Title, again[0].Title)
	}
}

func TestRecommendLimitOneKeepsOnlyTheFavorite(t *testing.T) {
	store := new(MockCandidateStore)
	svc := newTestRecommendationService(store, 7)
	userID := uuid.New()

	store.On("FindRecommendedSeeds", mock.Anything, 50).Return([]model.Recipe{{Title: "Seed"}}, nil)
	store.On("FindUserDietAndFavorites", mock.Anything, userID).
		Return(&model.User{ID: userID}, []model.Favorite{{RecipeName: "Mine"}}, nil)

	views, err := svc.Recommend(context.Background(), &userID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mine"}, viewTitles(views))
}

func TestRecommendUnknownUser(t *testing.T) {
	store := new(MockCandidateStore)
	svc := newTestRecommendationService(store, 1)
	userID := uuid.New()

	seeds := []model.Recipe{{Title: "A"}, {Title: "B"}}
	store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
	store.On("FindUserDietAndFavorites", mock.Anything, userID).
		Return(nil, nil, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound))

	views, err := svc.Recommend(context.Background(), &userID, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, []string{"A", "B"}, viewTitles(views))

	var storeErr *StoreError
	assert.False(t, errors.As(err, &storeErr))
}

func TestRecommendStoreFailures(t *testing.T) {
	boom := errors.New("timeout")
	userID := uuid.New()

	t.Run("seeds", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return(nil, boom)

		views, err := newTestRecommendationService(store, 1).Recommend(context.Background(), &userID, 10)
		assert.Nil(t, views)
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "find recommended seeds", storeErr.Op)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("favorites", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return([]model.Recipe{{Title: "A"}}, nil)
		store.On("FindUserDietAndFavorites", mock.Anything, userID).Return(nil, nil, boom)

		views, err := newTestRecommendationService(store, 1).Recommend(context.Background(), &userID, 10)
		assert.Nil(t, views, "a failed lookup must not fall back to seeds")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRecommendEmptyIsSuccess(t *testing.T) {
	store := new(MockCandidateStore)
	svc := newTestRecommendationService(store, 1)
	userID := uuid.New()

	store.On("FindRecommendedSeeds", mock.Anything, 50).Return([]model.Recipe{}, nil)
	store.On("FindUserDietAndFavorites", mock.Anything, userID).Return(&model.User{ID: userID}, nil, nil)

	views, err := svc.Recommend(context.Background(), &userID, 10)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestRecommendPersonalizedFiltersByDiet(t *testing.T) {
	userID := uuid.New()
	seeds := []model.Recipe{
		{Title: "A", Diet: strPtr("VEGAN")},
		{Title: "B", Diet: strPtr("Keto")},
		{Title: "Vegan Tacos"},
		{Title: "Lentil Stew", Description: "A hearty vegan stew"},
		{Title: "Steak", Description: "Not for vegetarians"},
	}

	t.Run("diet narrows the pool", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
		store.On("FindUserDietAndFavorites", mock.Anything, userID).
			Return(&model.User{ID: userID, Diet: strPtr("Vegan")}, nil, nil)

		views, err := newTestRecommendationService(store, 1).RecommendPersonalized(context.Background(), userID, 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"A", "Vegan Tacos", "Lentil Stew"}, viewTitles(views))
	})

	t.Run("public recommendations ignore the filter", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
		store.On("FindUserDietAndFavorites", mock.Anything, userID).
			Return(&model.User{ID: userID, Diet: strPtr("Vegan")}, nil, nil)

		views, err := newTestRecommendationService(store, 1).Recommend(context.Background(), &userID, 10)
		require.NoError(t, err)
		assert.Len(t, views, len(seeds))
	})

	t.Run("no diet keeps every seed", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
		store.On("FindUserDietAndFavorites", mock.Anything, userID).
			Return(&model.User{ID: userID, Diet: strPtr("  ")}, nil, nil)

		views, err := newTestRecommendationService(store, 1).RecommendPersonalized(context.Background(), userID, 10)
		require.NoError(t, err)
		assert.Len(t, views, len(seeds))
	})

	t.Run("favorite still leads", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
		store.On("FindUserDietAndFavorites", mock.Anything, userID).
			Return(&model.User{ID: userID, Diet: strPtr("vegan")},
				[]model.Favorite{{ID: uuid.New(), RecipeName: "Vegan Tacos"}}, nil)

		views, err := newTestRecommendationService(store, 1).RecommendPersonalized(context.Background(), userID, 2)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Vegan Tacos", views[0].Title)
		assert.False(t, views[0].Recommended)
		assert.Contains(t, []string{"A", "Lentil Stew"}, views[1].Title)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := new(MockCandidateStore)
		store.On("FindRecommendedSeeds", mock.Anything, 50).Return(seeds, nil)
		store.On("FindUserDietAndFavorites", mock.Anything, userID).Return(nil, nil, repository.ErrNotFound)

		_, err := newTestRecommendationService(store, 1).RecommendPersonalized(context.Background(), userID, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestMatchesDiet(t *testing.T) {
	assert.True(t, matchesDiet(model.Recipe{Title: "x", Diet: strPtr("Vegetarian")}, "vegetarian"))
	assert.False(t, matchesDiet(model.Recipe{Title: "Chicken Biryani", Diet: strPtr("Non-Vegetarian")}, "vegetarian"))
	assert.True(t, matchesDiet(model.Recipe{Title: "Keto Bowl"}, "keto"))
	assert.True(t, matchesDiet(model.Recipe{Title: "Bowl", Description: "Low-carb, KETO friendly"}, "keto"))
	assert.False(t, matchesDiet(model.Recipe{Title: "Bowl"}, "keto"))
}
