package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/culinary-assistant/backend/internal/middleware"
	"github.com/pageza/culinary-assistant/backend/internal/service"
)

// RecommendationHandler serves recipe recommendations
type RecommendationHandler struct {
	recommendationService service.IRecommendationService
	tokens                middleware.TokenValidator
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recommendationService service.IRecommendationService, tokens middleware.TokenValidator) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		tokens:                tokens,
	}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	recommendations := router.Group("/recommendations")
	{
		recommendations.GET("", h.GetRecommendations)
		recommendations.GET("/personalized", middleware.AuthMiddleware(h.tokens), h.GetPersonalized)
	}
}

// GetRecommendations answers GET /recommendations?userId=&limit=. An unknown
// user id is served the plain seed list.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
			return
		}
		userID = &id
	}

	views, err := h.recommendationService.Recommend(c.Request.Context(), userID, limit)
	if err != nil && !errors.Is(err, service.ErrUserNotFound) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": views})
}

// GetPersonalized answers GET /recommendations/personalized for the signed-in
// user. Seeds are narrowed to the user's diet before ranking.
func (h *RecommendationHandler) GetPersonalized(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	userID, _ := middleware.UserID(c)
	views, err := h.recommendationService.RecommendPersonalized(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": views})
}

// parseLimit reads the optional limit query parameter. Zero means the
// service default.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
		return 0, false
	}
	return limit, true
}
