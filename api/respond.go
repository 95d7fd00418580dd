package api

import (
	"net/http"

	"streamcart/auth-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// failureStatus maps a business failure onto the HTTP status the
// clients expect for it.
func failureStatus(f *auth.Failure) int {
	switch f.Kind {
	case auth.KindDuplicateEmail:
		return http.StatusConflict
	case auth.KindInvalidCredentials:
		return http.StatusUnauthorized
	case auth.KindNotVerified:
		return http.StatusForbidden
	case auth.KindResendCooldown:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func respondFailure(c *gin.Context, f *auth.Failure) {
	c.JSON(failureStatus(f), f)
}

// inputFailure builds the field-level result object used when request
// validation fails before the auth service is ever reached.
func inputFailure(field string, err error) *auth.Failure {
	return &auth.Failure{
		Fields: []auth.FieldError{{FieldName: field, Message: err.Error()}},
	}
}
