package api

import (
	"net/http"

	"streamcart/auth-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type signupBody struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) AuthSignup(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signupBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))

		respondFailure(c, inputFailure("email", err))
		return
	}

	if err := validators.FullNameValidator(data.FullName); err != nil {
		zap.L().Debug("Invalid name", zap.Error(err), zap.String("requestID", requestID))

		respondFailure(c, inputFailure("fullName", err))
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		zap.L().Debug("Invalid password", zap.Error(err), zap.String("requestID", requestID))

		respondFailure(c, inputFailure("password", err))
		return
	}

	failure, err := a.Auth.Signup(c, data.FullName, data.Email, data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Signup failed", zap.Error(err), zap.String("requestID", requestID))
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
