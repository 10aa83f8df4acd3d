package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	labRepo "lablink/database/repository/lab"
	userRepo "lablink/database/repository/user"
	"lablink/models"
	"lablink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "userID"
	CtxLabID  = "labID"
	CtxRole   = "role"
)

const authCachePrefix = "auth:"

// authenticate validates the bearer token, checks its hash against the
// stored session (auth cache first, then the database) and returns the
// subject ID. An empty return means the request was already aborted.
func authenticate(c *gin.Context, wantRole string, lookup func(tokenHash string) (string, error)) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return ""
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	subject, role, err := utils.ExtractClaimsFromToken(tokenString)
	if err != nil || subject == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return ""
	}
	if wantRole != "" && role != wantRole {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return ""
	}

	computedHash := utils.HashToken(tokenString)
	ctx := context.Background()
	cacheKey := authCachePrefix + subject

	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash != computedHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
				return ""
			}
			_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			c.Set(CtxRole, role)
			return subject
		}
		if err != redis.Nil {
			utils.GetLogger().Warn("auth cache lookup failed, falling back to database", zap.Error(err))
		}
	}

	storedSubject, err := lookup(computedHash)
	if err != nil || storedSubject != subject {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
		return ""
	}

	if authCache != nil {
		_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
	}
	c.Set(CtxRole, role)
	return subject
}

// JWTAuthDentistMiddleware authenticates dentist accounts.
func JWTAuthDentistMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return roleMiddleware(models.RoleDentist, users)
}

// JWTAuthAdminMiddleware authenticates admin accounts.
func JWTAuthAdminMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return roleMiddleware(models.RoleAdmin, users)
}

func roleMiddleware(role string, users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := authenticate(c, role, func(tokenHash string) (string, error) {
			u, err := users.GetByTokenHash(tokenHash)
			if err != nil || u == nil {
				return "", err
			}
			return u.ID, nil
		})
		if subject == "" {
			return
		}
		c.Set(CtxUserID, subject)
		c.Next()
	}
}

// JWTAuthLabMiddleware authenticates lab accounts.
func JWTAuthLabMiddleware(labs labRepo.LabRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := authenticate(c, models.RoleLab, func(tokenHash string) (string, error) {
			lab, err := labs.GetByTokenHash(tokenHash)
			if err != nil || lab == nil {
				return "", err
			}
			return lab.ID, nil
		})
		if subject == "" {
			return
		}
		c.Set(CtxLabID, subject)
		c.Next()
	}
}
