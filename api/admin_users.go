package api

import (
	"net/http"

	"streamcart/auth-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminListUsers returns all user accounts without their password
// hashes. Guarded by the readUser permission.
func (a *API) AdminListUsers(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var users []model.User

	err := a.DB.
		Omit("password_hash").
		Order("created_at desc").
		Find(&users).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

// AdminRevokeSessions force-signs-out every session a user holds.
// Guarded by the deleteUser permission.
func (a *API) AdminRevokeSessions(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.Param("id")

	res := a.DB.Where("user_id = ?", userID).Delete(&model.Session{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to revoke sessions", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revoked": res.RowsAffected,
	})
}
