package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/culinary-assistant/backend/internal/middleware"
	"github.com/pageza/culinary-assistant/backend/internal/service"
	"github.com/pageza/culinary-assistant/backend/internal/types"
)

// SearchHandler serves recipe search
type SearchHandler struct {
	searchService service.ISearchService
	tokens        middleware.TokenValidator
	limiter       *middleware.RateLimiter
}

// NewSearchHandler creates a new SearchHandler. limiter may be nil.
func NewSearchHandler(searchService service.ISearchService, tokens middleware.TokenValidator, limiter *middleware.RateLimiter) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		tokens:        tokens,
		limiter:       limiter,
	}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	handlers := []gin.HandlerFunc{middleware.OptionalAuth(h.tokens)}
	if h.limiter != nil {
		handlers = append(handlers, h.limiter.RateLimitMiddleware())
	}
	handlers = append(handlers, h.Search)
	router.GET("/recipes/search", handlers...)
}

// Search answers GET /recipes/search?query=. A signed-in caller also gets
// matches from their favorites. Store failures still answer 200, with an
// empty list and an error flag.
func (h *SearchHandler) Search(c *gin.Context) {
	var userID *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	results, err := h.searchService.Search(c.Request.Context(), c.Query("query"), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, gin.H{"recipes": []types.SearchResult{}, "error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results})
}
