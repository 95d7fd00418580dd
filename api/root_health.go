package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *API) Health(c *gin.Context) {
	status := "ok"

	sqlDB, err := a.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"uptime": time.Since(a.started).Round(time.Second).String(),
	})
}
