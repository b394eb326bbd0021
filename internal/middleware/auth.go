package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/backend/internal/types"
)

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates Bearer tokens and
// stores the caller's identity in the request context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return authMiddleware(validator, "")
}

// AuthMiddlewareWithNotice behaves like AuthMiddleware but replaces the
// rejection message with a fixed user-facing notice, for views whose
// unauthenticated redirect carries one (e.g. "please log in").
func AuthMiddlewareWithNotice(validator TokenValidator, notice string) gin.HandlerFunc {
	return authMiddleware(validator, notice)
}

func authMiddleware(validator TokenValidator, notice string) gin.HandlerFunc {
	reject := func(c *gin.Context, msg string) {
		if notice != "" {
			msg = notice
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
		c.Abort()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			reject(c, "invalid authorization header format")
			return
		}

		token := parts[1]
		claims, err := validator.ValidateToken(token)
		if err != nil {
			reject(c, err.Error())
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("token", token)
		c.Next()
	}
}
