package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every route handler the router needs.
type HandlerBundle struct {
	// Agent endpoints.
	Search        gin.HandlerFunc
	Call          gin.HandlerFunc
	DispatchSwarm gin.HandlerFunc

	// Directory endpoints.
	GetProviderByID gin.HandlerFunc
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
