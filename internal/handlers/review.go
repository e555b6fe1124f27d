package handlers

import (
	"net/http"

	"rentvoice/internal/services"
	"rentvoice/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create submits a new review. Whatever status the client may try to smuggle
// in is ignored; the service forces pending.
func (h *ReviewHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var input services.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	review, err := h.reviews.Submit(user.ID, input)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var input services.UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	review, err := h.reviews.Edit(id, user.ID, input)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := h.reviews.Delete(id, user.ID); err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Mine lists the session user's reviews across all statuses.
func (h *ReviewHandler) Mine(c *gin.Context) {
	user := CurrentUser(c)

	reviews, err := h.reviews.ListForUser(user.ID)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reviews})
}
