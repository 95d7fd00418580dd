package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthSignout is idempotent, calling it without a session just clears
// the cookies again.
func (a *API) AuthSignout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if err := a.Auth.Signout(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Signout failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
