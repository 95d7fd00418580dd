package middleware

import (
	"net/http"

	"streamcart/auth-api/internal/access"
	"streamcart/auth-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the flat permission allow-list.
// Must run after the session middleware. Ordinary users pass
// unconditionally, elevated roles need the exact (method, resource)
// grant.
func RequirePermission(s *auth.Service, method access.Method, resource access.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		data, err := s.CurrentSession(c)
		if err != nil || data == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "not_authenticated",
				"requestID": requestID,
			})
			return
		}

		if !access.NewChecker(data.User).Allowed(method, resource) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "permission_denied",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
