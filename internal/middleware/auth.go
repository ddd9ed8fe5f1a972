package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"custom-field-api/internal/domain"
)

// ParseToken validates a JWT with the given secret and builds the caller's
// auth context from its claims. Expected claims: user_id (or sub), org_ids
// and role.
func ParseToken(jwtSecret, tokenString string) (*domain.AuthContext, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	// Extract user ID from claims (support multiple claim formats)
	var userIDStr string
	if uid, ok := claims["user_id"].(string); ok {
		userIDStr = uid
	} else if sub, ok := claims["sub"].(string); ok {
		userIDStr = sub
	} else {
		return nil, errors.New("user ID not found in token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid user ID format")
	}

	auth := &domain.AuthContext{UserID: userID}

	if orgIDs, ok := claims["org_ids"].([]interface{}); ok {
		for _, raw := range orgIDs {
			s, ok := raw.(string)
			if !ok {
				continue
			}
			if orgID, err := uuid.Parse(s); err == nil {
				auth.OrganizationIDs = append(auth.OrganizationIDs, orgID)
			}
		}
	}

	if role, ok := claims["role"].(string); ok {
		auth.Role = domain.Role(role)
	}

	return auth, nil
}

// Auth returns a middleware that validates JWT tokens and stores the
// caller's auth context for downstream handlers
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid authorization header format",
				},
			})
			c.Abort()
			return
		}

		tokenString := parts[1]

		auth, err := ParseToken(jwtSecret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		// Store auth context and JWT token in context for downstream use
		c.Set("auth", auth)
		c.Set("user_id", auth.UserID)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}
