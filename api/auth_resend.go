package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) AuthResend(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	failure, err := a.Auth.Resend(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("OTP resend failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if failure != nil {
		respondFailure(c, failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent",
	})
}
