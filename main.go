// File: bookline/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookline/config"
	"bookline/database"
	directoryRepo "bookline/database/repository/directory"
	"bookline/handlers"
	"bookline/middleware"
	"bookline/models"
	"bookline/routes"
	"bookline/services/negotiation"
	"bookline/services/ranking"
	"bookline/services/session"
	"bookline/services/swarm"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Directory: real records first, synthetic ids as fallback.
	mongoDirectory := directoryRepo.NewMongoDirectory()
	resolver := directoryRepo.NewChain(mongoDirectory, directoryRepo.NewSyntheticDirectory())

	// Services.
	rankerInstance := ranking.NewRankingService()
	negotiator := negotiation.NewSimulator(resolver, negotiation.WithLogger(logger))
	swarmService := swarm.NewSwarmService(negotiator, resolver,
		swarm.WithLogger(logger),
		swarm.WithObserver(func(st models.CallStatus) {
			logger.Debug("call status changed",
				zap.String("providerId", st.ProviderID),
				zap.String("state", string(st.State)))
		}),
	)

	sessionStore := session.NewRedisStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)

	dispatchDefaults := models.SwarmConfig{
		MaxConcurrentCalls: config.AppConfig.MaxConcurrentCalls,
		TimeoutMs:          config.AppConfig.CallTimeoutMs,
		StopOnFirstSuccess: config.AppConfig.StopOnFirstSuccess,
	}

	agentHandler := handlers.NewAgentHandler(
		rankerInstance,
		swarmService,
		mongoDirectory,
		resolver,
		sessionStore,
		dispatchDefaults,
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Search:          agentHandler.Search,
		Call:            agentHandler.Call,
		DispatchSwarm:   agentHandler.Dispatch,
		GetProviderByID: agentHandler.GetProvider,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
