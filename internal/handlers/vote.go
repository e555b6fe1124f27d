package handlers

import (
	"net/http"

	"rentvoice/internal/services"
	"rentvoice/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes   *services.VoteService
	reports *services.ReportService
}

func NewVoteHandler(votes *services.VoteService, reports *services.ReportService) *VoteHandler {
	return &VoteHandler{votes: votes, reports: reports}
}

type voteRequest struct {
	IsHelpful bool `json:"is_helpful"`
}

// Vote records a helpfulness vote and returns the counters read back from the
// ledger.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := CurrentUser(c)
	reviewID := utils.StringToUint(c.Param("id"))

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.votes.Vote(reviewID, user.ID, req.IsHelpful); err != nil {
		RenderServiceError(c, err)
		return
	}

	helpful, notHelpful, err := h.votes.Counts(reviewID)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"helpful": helpful, "not_helpful": notHelpful})
}

type reportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

func (h *VoteHandler) Report(c *gin.Context) {
	user := CurrentUser(c)
	reviewID := utils.StringToUint(c.Param("id"))

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := h.reports.Report(reviewID, user.ID, req.Reason, req.Details)
	if err != nil {
		RenderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}
