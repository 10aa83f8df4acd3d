package handlers

import (
	"net/http"
	"strconv"

	"lablink/models"
	"lablink/services/ranking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RankingHandler exposes the lab ranking and auto-assignment policies.
type RankingHandler struct {
	Ranking ranking.RankingService
}

// RankedLabsHandler handles GET /api/labs/ranked.
func (h *RankingHandler) RankedLabsHandler(c *gin.Context) {
	logger := getLogger(c)

	req := models.ShortlistRequest{
		RestorationType: c.Query("restorationType"),
		Urgency:         c.DefaultQuery("urgency", models.UrgencyNormal),
		DoctorID:        dentistID(c),
	}
	if !models.ValidRestorationType(req.RestorationType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown restoration type"})
		return
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		req.Limit = n
	}

	result, err := h.Ranking.Shortlist(c.Request.Context(), req)
	if err != nil {
		logger.Error("shortlist failed",
			zap.String("restorationType", req.RestorationType), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank labs"})
		return
	}
	c.JSON(http.StatusOK, result)
}
