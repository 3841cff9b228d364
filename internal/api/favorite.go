package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/culinary-assistant/backend/internal/middleware"
	"github.com/pageza/culinary-assistant/backend/internal/service"
	"github.com/pageza/culinary-assistant/backend/internal/types"
)

// FavoriteHandler serves a user's saved recipes
type FavoriteHandler struct {
	favoriteService service.IFavoriteService
	tokens          middleware.TokenValidator
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService service.IFavoriteService, tokens middleware.TokenValidator) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		tokens:          tokens,
	}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favourites := router.Group("/favourites")
	favourites.Use(middleware.AuthMiddleware(h.tokens))
	{
		favourites.GET("", h.ListFavorites)
		favourites.POST("", h.AddFavorite)
		favourites.DELETE("", h.RemoveFavorite)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req types.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing recipe"})
		return
	}

	userID, _ := middleware.UserID(c)
	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, req.Recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"favorite": favorite})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	var req types.RemoveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing recipeName"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), userID, req.RecipeName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
