package handlers

import (
	"net/http"

	"rentvoice/internal/services"
	"rentvoice/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation surface. Routes using it sit behind the
// AdminRequired middleware; the services themselves do no authorization.
type AdminHandler struct {
	moderation *services.ModerationService
}

func NewAdminHandler(moderation *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	reviews, err := h.moderation.ListPending()
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reviews})
}

type moderateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *AdminHandler) Moderate(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	review, err := h.moderation.Moderate(id, req.Status, req.Notes)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	reports, err := h.moderation.ListReports(c.Query("status"))
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

type resolveReportRequest struct {
	Status string `json:"status"` // resolved or dismissed
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.moderation.ResolveReport(id, req.Status)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
