package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserMe returns the logged in user. The session middleware already
// resolved and memoized the session, so the CurrentSession call here
// is a context read, not another pair of store lookups.
func (a *API) UserMe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	data, err := a.Auth.CurrentSession(c)
	if err != nil || data == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to resolve session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    data.User,
		"expires": data.Session.ExpiresAt,
	})
}
