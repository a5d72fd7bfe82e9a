package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_reporting_system/internal/auth"
	"github.com/sirupsen/logrus"
)

const principalContextKey = "principal"

// BearerAuthMiddleware verifies the Authorization bearer token with the
// configured provider and stores the resulting principal in the request
// context. There is no anonymous access to the reporting surface.
func BearerAuthMiddleware(provider auth.Provider, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			log.Warn("Authorization bearer token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		principal, err := provider.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Warn("Token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// principalFromContext returns the verified principal, or a zero principal
// when the middleware did not run on this route.
func principalFromContext(c *gin.Context) auth.Principal {
	value, ok := c.Get(principalContextKey)
	if !ok {
		return auth.Principal{}
	}
	principal, _ := value.(auth.Principal)
	return principal
}
