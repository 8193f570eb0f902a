package routes

import (
	"time"

	"bookline/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)

	agent := r.Group("/api/agent")
	{
		agent.POST("/search", hb.Search)       // Phase 1: rank providers, open session
		agent.POST("/call", hb.Call)           // Phase 2a: single negotiation
		agent.POST("/swarm", hb.DispatchSwarm) // Phase 2b: concurrent dispatch
	}

	providers := r.Group("/api/providers")
	{
		providers.GET("/:id", hb.GetProviderByID)
	}
}
