package testhelpers

import (
	"testing"
	"time"

	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// CreateUser inserts a user with the given diet. An empty diet is stored as NULL.
func CreateUser(t *testing.T, db *gorm.DB, email, diet string) model.User {
	t.Helper()
	user := model.User{Name: "Test User", Email: email}
	if diet != "" {
		user.Diet = StrPtr(diet)
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateRecipes inserts recipes in order, spacing their creation times one
// second apart so the last one is the newest.
func CreateRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) []model.Recipe {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := range recipes {
		recipes[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(&recipes[i]).Error)
	}
	return recipes
}

// CreateFavorites is CreateRecipes for favorites.
func CreateFavorites(t *testing.T, db *gorm.DB, favorites ...model.Favorite) []model.Favorite {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	for i := range favorites {
		favorites[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(&favorites[i]).Error)
	}
	return favorites
}
