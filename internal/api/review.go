package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/culinary-assistant/backend/internal/middleware"
	"github.com/pageza/culinary-assistant/backend/internal/service"
	"github.com/pageza/culinary-assistant/backend/internal/types"
)

// ReviewHandler serves recipe reviews and rating summaries
type ReviewHandler struct {
	reviewService service.IReviewService
	tokens        middleware.TokenValidator
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.IReviewService, tokens middleware.TokenValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		tokens:        tokens,
	}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.tokens)

	reviews := router.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.POST("", auth, h.CreateReview)
		reviews.DELETE("", auth, h.DeleteReview)
	}
	router.GET("/ratings", h.GetRating)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	filter, ok := recipeFilter(c)
	if !ok {
		return
	}
	list, err := h.reviewService.ListReviews(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID, _ := middleware.UserID(c)
	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	var req types.DeleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing reviewId"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, req.ReviewID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ReviewHandler) GetRating(c *gin.Context) {
	filter, ok := recipeFilter(c)
	if !ok {
		return
	}
	summary, err := h.reviewService.GetRating(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// recipeFilter reads recipeId or recipeName from the query string.
func recipeFilter(c *gin.Context) (service.RecipeFilter, bool) {
	var filter service.RecipeFilter
	if raw := c.Query("recipeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid recipeId"})
			return filter, false
		}
		filter.RecipeID = &id
	}
	filter.RecipeName = c.Query("recipeName")
	if filter.RecipeID == nil && filter.RecipeName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing recipeId or recipeName"})
		return filter, false
	}
	return filter, true
}
