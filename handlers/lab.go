package handlers

import (
	"net/http"

	"lablink/models"
	"lablink/services/lab"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LabHandler exposes lab onboarding, profile and catalogue endpoints.
type LabHandler struct {
	Labs lab.LabService
}

// RegisterLabHandler handles POST /api/labs/register.
func (h *LabHandler) RegisterLabHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.Lab
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, token, err := h.Labs.Register(c.Request.Context(), &input)
	if err != nil {
		logger.Error("lab registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lab": created, "token": token})
}

// LoginLabHandler handles POST /api/labs/login.
func (h *LabHandler) LoginLabHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	l, token, err := h.Labs.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lab": l, "token": token})
}

// RevokeLabTokenHandler handles DELETE /api/labs/revoke.
func (h *LabHandler) RevokeLabTokenHandler(c *gin.Context) {
	if err := h.Labs.Revoke(c.Request.Context(), labID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}

// GetLabHandler handles GET /api/labs/:id.
func (h *LabHandler) GetLabHandler(c *gin.Context) {
	l, err := h.Labs.GetLab(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lab not found"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// ListLabsHandler handles GET /api/labs (the directory view).
func (h *LabHandler) ListLabsHandler(c *gin.Context) {
	labs, err := h.Labs.ListActiveLabs(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to list labs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list labs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"labs": labs})
}

// UpdateLabProfileHandler handles PATCH /api/labs/profile.
func (h *LabHandler) UpdateLabProfileHandler(c *gin.Context) {
	var input models.Lab
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = labID(c)

	updated, err := h.Labs.UpdateProfile(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeactivateLabHandler handles DELETE /api/labs/profile.
func (h *LabHandler) DeactivateLabHandler(c *gin.Context) {
	if err := h.Labs.Deactivate(c.Request.Context(), labID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lab deactivated"})
}

// UpdateLabFCMTokenHandler handles PUT /api/labs/fcm-token.
func (h *LabHandler) UpdateLabFCMTokenHandler(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if err := h.Labs.UpdateFCMToken(c.Request.Context(), labID(c), input.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}

// SetPricingHandler handles PUT /api/labs/pricing.
func (h *LabHandler) SetPricingHandler(c *gin.Context) {
	var input models.LabPricing
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.LabID = labID(c)

	if err := h.Labs.SetPricing(c.Request.Context(), &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, input)
}

// ListPricingHandler handles GET /api/labs/:id/pricing.
func (h *LabHandler) ListPricingHandler(c *gin.Context) {
	pricing, err := h.Labs.ListPricing(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pricing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}

// SetSpecializationHandler handles PUT /api/labs/specializations.
func (h *LabHandler) SetSpecializationHandler(c *gin.Context) {
	var input models.LabSpecialization
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.LabID = labID(c)

	if err := h.Labs.SetSpecialization(c.Request.Context(), &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, input)
}

// ListSpecializationsHandler handles GET /api/labs/:id/specializations.
func (h *LabHandler) ListSpecializationsHandler(c *gin.Context) {
	specs, err := h.Labs.ListSpecializations(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list specializations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"specializations": specs})
}

// SubmitReviewHandler handles POST /api/labs/reviews (dentist side).
func (h *LabHandler) SubmitReviewHandler(c *gin.Context) {
	var input models.LabReview
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.DoctorID = dentistID(c)

	review, err := h.Labs.SubmitReview(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviewsHandler handles GET /api/labs/:id/reviews.
func (h *LabHandler) ListReviewsHandler(c *gin.Context) {
	reviews, avg, err := h.Labs.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "averageRating": avg})
}

// GetPreferredLabsHandler handles GET /api/labs/preferred (dentist side).
func (h *LabHandler) GetPreferredLabsHandler(c *gin.Context) {
	prefs, err := h.Labs.GetPreferredLabs(c.Request.Context(), dentistID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list preferred labs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferredLabs": prefs})
}

// SetPreferredLabsHandler handles PUT /api/labs/preferred (dentist side).
func (h *LabHandler) SetPreferredLabsHandler(c *gin.Context) {
	var input struct {
		LabIDs []string `json:"labIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Labs.SetPreferredLabs(c.Request.Context(), dentistID(c), input.LabIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preference list updated"})
}

// RemovePreferredLabHandler handles DELETE /api/labs/preferred/:labId.
func (h *LabHandler) RemovePreferredLabHandler(c *gin.Context) {
	if err := h.Labs.RemovePreferredLab(c.Request.Context(), dentistID(c), c.Param("labId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preferred lab removed"})
}
