package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is the API version reported by Info.
var Version = "0.1.0"

// Info lists the API name, version and feature set.
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":     "TCO API",
		"version":  Version,
		"features": []string{"tco", "scenarios"},
		"docs":     "README.md#http-api",
	})
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
