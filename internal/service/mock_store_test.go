package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/culinary-assistant/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockCandidateStore is a mock implementation of CandidateStore
type MockCandidateStore struct {
	mock.Mock
}

func (m *MockCandidateStore) FindRecipesBySubstring(ctx context.Context, query string, limit int) ([]model.Recipe, error) {
	args := m.Called(ctx, query, limit)
	return recipesArg(args, 0), args.Error(1)
}

func (m *MockCandidateStore) FindRecipesBySimilarity(ctx context.Context, lowerQuery string, threshold float64, limit int) ([]model.Recipe, error) {
	args := m.Called(ctx, lowerQuery, threshold, limit)
	return recipesArg(args, 0), args.Error(1)
}

func (m *MockCandidateStore) FindFavoritesBySubstring(ctx context.Context, userID uuid.UUID, query string, limit int) ([]model.Favorite, error) {
	args := m.Called(ctx, userID, query, limit)
	return favoritesArg(args, 0), args.Error(1)
}

func (m *MockCandidateStore) FindFavoritesBySimilarity(ctx context.Context, userID uuid.UUID, lowerQuery string, threshold float64, limit int) ([]model.Favorite, error) {
	args := m.Called(ctx, userID, lowerQuery, threshold, limit)
	return favoritesArg(args, 0), args.Error(1)
}

func (m *MockCandidateStore) FindRecommendedSeeds(ctx context.Context, limit int) ([]model.Recipe, error) {
	args := m.Called(ctx, limit)
	return recipesArg(args, 0), args.Error(1)
}

func (m *MockCandidateStore) FindUserDietAndFavorites(ctx context.Context, userID uuid.UUID) (*model.User, []model.Favorite, error) {
	args := m.Called(ctx, userID)
	var user *model.User
	if u := args.Get(0); u != nil {
		user = u.(*model.User)
	}
	return user, favoritesArg(args, 1), args.Error(2)
}

func recipesArg(args mock.Arguments, i int) []model.Recipe {
	if v := args.Get(i); v != nil {
		return v.([]model.Recipe)
	}
	return nil
}

func favoritesArg(args mock.Arguments, i int) []model.Favorite {
	if v := args.Get(i); v != nil {
		return v.([]model.Favorite)
	}
	return nil
}
