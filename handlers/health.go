package handlers

import (
	"net/http"

	"pizzeria/utils"

	"github.com/gin-gonic/gin"
)

const serviceName = "Pablo's Pizza API"

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": serviceName})
}

// Health reports the latest snapshot from the background monitor.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"checks":  utils.GetHealthStatus(),
	})
}
