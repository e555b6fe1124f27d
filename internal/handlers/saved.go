package handlers

import (
	"errors"
	"net/http"

	"rentvoice/internal/models"
	"rentvoice/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SavedHandler struct {
	db *gorm.DB
}

func NewSavedHandler(db *gorm.DB) *SavedHandler {
	return &SavedHandler{db: db}
}

// Toggle saves or unsaves a property for the session user.
func (h *SavedHandler) Toggle(c *gin.Context) {
	user := CurrentUser(c)
	propertyID := utils.StringToUint(c.Param("propertyID"))

	var property models.Property
	if err := h.db.First(&property, propertyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var existing models.SavedProperty
	err := h.db.Where("user_id = ? AND property_id = ?", user.ID, propertyID).First(&existing).Error
	if err == nil {
		h.db.Delete(&existing)
		c.JSON(http.StatusOK, gin.H{"saved": false})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	saved := models.SavedProperty{
		UserID:     user.ID,
		PropertyID: propertyID,
	}
	if err := h.db.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *SavedHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var saved []models.SavedProperty
	err := h.db.Preload("Property").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&saved).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": saved})
}
