package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/culinary-assistant/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses. Unknown errors become
// a 500 without leaking their text.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "invalid token"
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrUserNotFound):
		status, message = http.StatusNotFound, "user not found"
	case errors.Is(err, service.ErrRecipeNotFound):
		status, message = http.StatusNotFound, "recipe not found"
	case errors.Is(err, service.ErrReviewNotFound):
		status, message = http.StatusNotFound, "review not found"
	case errors.Is(err, service.ErrFavoriteNotFound):
		status, message = http.StatusNotFound, "favorite not found"
	case errors.Is(err, service.ErrFavoriteExists):
		status, message = http.StatusConflict, "favorite already exists"
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
