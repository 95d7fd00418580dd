package middleware

import (
	"net/http"

	"streamcart/auth-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewSessionMiddleware guards protected routes. It re-derives identity
// from the session cookie through the auth service (cookie decode,
// live session row, verified user) and rejects everything else. The
// lookup result is memoized on the request, handlers calling
// CurrentSession again don't hit the store twice.
func NewSessionMiddleware(s *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		data, err := s.CurrentSession(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resolve session", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if data == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "not_authenticated",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", data.User.ID)
		c.Next()
	}
}
