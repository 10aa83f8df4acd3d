package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lablink/utils"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the
// global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// dentistID returns the authenticated dentist's ID set by the auth middleware.
func dentistID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// labID returns the authenticated lab's ID set by the auth middleware.
func labID(c *gin.Context) string {
	if v, ok := c.Get("labID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
