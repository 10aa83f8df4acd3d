package handlers

import (
	"net/http"

	"lablink/models"
	"lablink/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes dentist and admin account endpoints.
type UserHandler struct {
	Users user.UserService
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	// Admin accounts are provisioned out of band.
	input.Role = models.RoleDentist

	created, token, err := h.Users.Register(c.Request.Context(), &input)
	if err != nil {
		logger.Error("user registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": created, "token": token})
}

// LoginUserHandler handles POST /api/users/login.
func (h *UserHandler) LoginUserHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, token, err := h.Users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// RevokeUserTokenHandler handles DELETE /api/users/revoke.
func (h *UserHandler) RevokeUserTokenHandler(c *gin.Context) {
	if err := h.Users.Revoke(c.Request.Context(), dentistID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked"})
}

// GetMeHandler handles GET /api/users/me.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), dentistID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUserFCMTokenHandler handles PUT /api/users/fcm-token.
func (h *UserHandler) UpdateUserFCMTokenHandler(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	if err := h.Users.UpdateFCMToken(c.Request.Context(), dentistID(c), input.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Push token updated"})
}

// ListUsersHandler handles GET /api/admin/users.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
