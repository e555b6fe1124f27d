package handlers

import (
	"errors"
	"net/http"

	"rentvoice/internal/middleware"
	"rentvoice/internal/models"
	"rentvoice/internal/services"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the session user set by the LoadUser middleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// RenderServiceError maps the service error taxonomy onto HTTP statuses.
// Unclassified store errors become a 500 with the error passed through.
func RenderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, services.ErrRejectedImmutable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
