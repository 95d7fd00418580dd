package api

import (
	"net/http"

	"streamcart/auth-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type otpBody struct {
	Otp string `json:"otp"`
}

// AuthOtp redeems the one-time code for the signup the temp-auth
// cookie points at. The email never comes from the request body, only
// from the signed cookie.
func (a *API) AuthOtp(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	temp, ok := a.Jar.Temp(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "no_signup_in_progress",
			"requestID": requestID,
		})
		return
	}

	var data otpBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.OtpValidator(data.Otp); err != nil {
		respondFailure(c, inputFailure("otp", err))
		return
	}

	failure, err := a.Auth.VerifyOtp(c, temp.Identifier, data.Otp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("OTP verification failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if failure != nil {
		respondFailure(c, failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account verified",
	})
}
