package handlers

import (
	"net/http"
	"strconv"

	"rentvoice/internal/services"
	"rentvoice/internal/utils"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	properties *services.PropertyService
	reviews    *services.ReviewService
}

func NewPropertyHandler(properties *services.PropertyService, reviews *services.ReviewService) *PropertyHandler {
	return &PropertyHandler{properties: properties, reviews: reviews}
}

// Search handles /properties/search?q=...&min_rating=...&page=...
func (h *PropertyHandler) Search(c *gin.Context) {
	minRating, _ := strconv.ParseFloat(c.Query("min_rating"), 64)

	opts := services.SearchOptions{
		MinRating:    minRating,
		Neighborhood: c.Query("neighborhood"),
		MinReviews:   utils.StringToInt(c.Query("min_reviews")),
		SortBy:       c.Query("sort"),
		Ascending:    c.Query("order") == "asc",
		Page:         utils.StringToInt(c.DefaultQuery("page", "1")),
		PageSize:     utils.StringToInt(c.DefaultQuery("page_size", "20")),
	}

	page, err := h.properties.Search(c.Query("q"), opts)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PropertyHandler) TopRated(c *gin.Context) {
	limit := utils.StringToInt(c.DefaultQuery("limit", "10"))
	properties, err := h.properties.TopRated(limit)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": properties})
}

func (h *PropertyHandler) Neighborhoods(c *gin.Context) {
	names, err := h.properties.Neighborhoods()
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": names})
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	property, err := h.properties.Get(id)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// Reviews lists the approved reviews of one property, paginated.
func (h *PropertyHandler) Reviews(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if _, err := h.properties.Get(id); err != nil {
		RenderServiceError(c, err)
		return
	}

	opts := services.ListOptions{
		SortBy:    c.Query("sort"),
		Ascending: c.Query("order") == "asc",
		Page:      utils.StringToInt(c.DefaultQuery("page", "1")),
		PageSize:  utils.StringToInt(c.DefaultQuery("page_size", "20")),
	}

	page, err := h.reviews.ListForProperty(id, opts)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
