package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"custom-field-api/internal/domain"
	"custom-field-api/internal/response"
)

// ExtractAuthContext reads the auth context stored by the auth middleware.
// On failure it writes a 401 response and returns false.
func ExtractAuthContext(c *gin.Context) (*domain.AuthContext, bool) {
	raw, exists := c.Get("auth")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Auth context not found")
		return nil, false
	}

	auth, ok := raw.(*domain.AuthContext)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid auth context")
		return nil, false
	}

	return auth, true
}
