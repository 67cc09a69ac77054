package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
)

const identityKey = "identity"

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Authenticate resolves the bearer token into an Identity and aborts with 401 otherwise
func Authenticate(verifier TokenVerifier, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message: "Missing bearer token",
				Code:    "unauthorized",
			})
			return
		}

		identity, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.Warn("Rejected bearer token",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message: "Invalid or expired token",
				Code:    "unauthorized",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Set("user_id", identity.Subject)
		c.Set("user_role", identity.Role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated identity has one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Message: "User not authenticated",
				Code:    "unauthorized",
			})
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
			Message: "Insufficient permissions",
			Code:    "forbidden",
		})
	}
}

// IdentityFromContext returns the identity set by Authenticate
func IdentityFromContext(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
