package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kedai/model"
)

// AuthMiddleware validates the bearer token and stores the caller's id and
// role in the request context. When roles are given, the caller must hold one
// of them; with no roles any authenticated user passes.
func AuthMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required"})
			c.Abort()
			return
		}

		userID, role, err := identityFromHeader(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}

		if len(roles) > 0 && !roleAllowed(role, roles) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden: insufficient role"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

func roleAllowed(role model.UserRole, allowed []model.UserRole) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

func identityFromHeader(authHeader string) (uint, model.UserRole, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", errors.New("invalid token format")
	}

	claims, err := ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return 0, "", err
	}

	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, "", errors.New("id not found in token")
	}
	roleStr, ok := claims["user_role"].(string)
	if !ok {
		return 0, "", errors.New("role not found in token")
	}

	return uint(idFloat), model.UserRole(roleStr), nil
}
