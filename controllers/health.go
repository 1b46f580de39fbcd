package controllers

import (
	"context"
	"net/http"
	"time"

	"celebrato-backend/config"

	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	c.String(http.StatusOK, "Celebrato backend is running")
}

// Health reports database reachability.
func Health(c *gin.Context) {
	status := http.StatusOK
	database := "up"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if config.DB == nil {
		database = "unconfigured"
		status = http.StatusServiceUnavailable
	} else if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		database = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"database": database,
		"time":     time.Now().UTC(),
	})
}
