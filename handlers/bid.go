package handlers

import (
	"net/http"

	"lablink/models"
	"lablink/services/bid"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BidHandler exposes the marketplace bidding endpoints.
type BidHandler struct {
	Bids bid.BidService
}

// SubmitBidHandler handles POST /api/bids (lab side).
func (h *BidHandler) SubmitBidHandler(c *gin.Context) {
	var input models.Bid
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.LabID = labID(c)

	b, err := h.Bids.SubmitBid(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListOrderBidsHandler handles GET /api/orders/:id/bids (dentist side).
func (h *BidHandler) ListOrderBidsHandler(c *gin.Context) {
	bids, err := h.Bids.ListOrderBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		getLogger(c).Error("failed to list bids", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bids"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// ListMyBidsHandler handles GET /api/bids (lab side).
func (h *BidHandler) ListMyBidsHandler(c *gin.Context) {
	bids, err := h.Bids.ListLabBids(c.Request.Context(), labID(c))
	if err != nil {
		getLogger(c).Error("failed to list lab bids", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bids"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// AcceptBidHandler handles POST /api/bids/:id/accept (dentist side).
func (h *BidHandler) AcceptBidHandler(c *gin.Context) {
	b, err := h.Bids.AcceptBid(c.Request.Context(), c.Param("id"), dentistID(c))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// WithdrawBidHandler handles POST /api/bids/:id/withdraw (lab side).
func (h *BidHandler) WithdrawBidHandler(c *gin.Context) {
	if err := h.Bids.WithdrawBid(c.Request.Context(), c.Param("id"), labID(c)); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bid withdrawn"})
}
