package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/pageza/culinary-assistant/backend/internal/repository"
	"github.com/pageza/culinary-assistant/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func names(favorites []model.Favorite) []string {
	out := make([]string, len(favorites))
	for i, f := range favorites {
		out[i] = f.RecipeName
	}
	return out
}

func TestFindRecipesBySubstring(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)
	ctx := context.Background()

	testhelpers.CreateRecipes(t, db,
		model.Recipe{Title: "Paneer Tikka", Description: "grilled cheese cubes"},
		model.Recipe{Title: "Greek Salad", Description: "cucumber, feta"},
		model.Recipe{Title: "Palak Paneer", Description: "spinach curry"},
		model.Recipe{Title: "Shahi Korma", Description: "rich curry with PANEER"},
	)

	got, err := store.FindRecipesBySubstring(ctx, "paneer", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shahi Korma", "Palak Paneer", "Paneer Tikka"}, titles(got))

	got, err = store.FindRecipesBySubstring(ctx, "paneer", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.FindRecipesBySubstring(ctx, "sushi", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindRecipesBySubstringEscapesWildcards(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)

	testhelpers.CreateRecipes(t, db,
		model.Recipe{Title: "Dal"},
		model.Recipe{Title: "100% Rye Bread"},
	)

	got, err := store.FindRecipesBySubstring(context.Background(), "%", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Rye Bread"}, titles(got))

	got, err = store.FindRecipesBySubstring(context.Background(), "_", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindRecipesBySimilarity(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)

	testhelpers.CreateRecipes(t, db,
		model.Recipe{Title: "Chicken Biryani"},
		model.Recipe{Title: "Greek Salad"},
		model.Recipe{Title: "Veg Biryani"},
	)

	got, err := store.FindRecipesBySimilarity(context.Background(), "biriyani", 0.15, 20)
	require.NoError(t, err)
	// "veg biryani" shares as many trigrams with fewer extras, so it ranks first.
	assert.Equal(t, []string{"Veg Biryani", "Chicken Biryani"}, titles(got))

	got, err = store.FindRecipesBySimilarity(context.Background(), "biriyani", 0.99, 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindFavoritesScopedToUser(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice@example.com", "Vegetarian")
	bob := testhelpers.CreateUser(t, db, "bob@example.com", "")

	testhelpers.CreateFavorites(t, db,
		model.Favorite{UserID: alice.ID, RecipeName: "Paneer Butter Masala"},
		model.Favorite{UserID: bob.ID, RecipeName: "Paneer Bhurji"},
		model.Favorite{UserID: alice.ID, RecipeName: "Dal Makhani", Description: "no paneer here, honestly"},
	)

	got, err := store.FindFavoritesBySubstring(ctx, alice.ID, "PANEER", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dal Makhani", "Paneer Butter Masala"}, names(got))

	got, err = store.FindFavoritesBySimilarity(ctx, bob.ID, "paner bhurji", 0.15, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paneer Bhurji"}, names(got))

	got, err = store.FindFavoritesBySubstring(ctx, uuid.New(), "paneer", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindRecommendedSeeds(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)

	testhelpers.CreateRecipes(t, db,
		model.Recipe{Title: "A", Recommended: true},
		model.Recipe{Title: "B"},
		model.Recipe{Title: "C", Recommended: true},
		model.Recipe{Title: "D", Recommended: true},
	)

	got, err := store.FindRecommendedSeeds(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C"}, titles(got))
}

func TestSameTimestampOrdersByName(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)
	ctx := context.Background()

	at := time.Now().Add(-time.Hour).UTC()
	recipes := []model.Recipe{
		{Title: "Paneer Tikka", Recommended: true, CreatedAt: at},
		{Title: "Chana Masala", Recommended: true, CreatedAt: at},
		{Title: "Matar Paneer", Recommended: true, CreatedAt: at},
	}
	require.NoError(t, db.CreateInBatches(recipes, 10).Error)

	seeds, err := store.FindRecommendedSeeds(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chana Masala", "Matar Paneer", "Paneer Tikka"}, titles(seeds))

	got, err := store.FindRecipesBySubstring(ctx, "paneer", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Matar Paneer", "Paneer Tikka"}, titles(got))

	user := testhelpers.CreateUser(t, db, "cook@example.com", "")
	favorites := []model.Favorite{
		{UserID: user.ID, RecipeName: "Rajma", CreatedAt: at},
		{UserID: user.ID, RecipeName: "Kadhi", CreatedAt: at},
	}
	require.NoError(t, db.CreateInBatches(favorites, 10).Error)

	_, saved, err := store.FindUserDietAndFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kadhi", "Rajma"}, names(saved))
}

func TestFindUserDietAndFavorites(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	store := repository.NewGormCandidateStore(db)
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db, "cook@example.com", "Vegan")
	testhelpers.CreateFavorites(t, db,
		model.Favorite{UserID: user.ID, RecipeName: "First"},
		model.Favorite{UserID: user.ID, RecipeName: "Second"},
	)

	got, favorites, err := store.FindUserDietAndFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Diet)
	assert.Equal(t, "Vegan", *got.Diet)
	assert.Equal(t, []string{"Second", "First"}, names(favorites))

	_, _, err = store.FindUserDietAndFavorites(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
