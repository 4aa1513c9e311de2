package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"operation-theta/internal/api"
	"operation-theta/internal/auth"
	"operation-theta/internal/config"
	"operation-theta/internal/core"
	"operation-theta/internal/db"
	"operation-theta/internal/events"
	"operation-theta/internal/middleware"
)

func main() {
	// A .env file is a development convenience; release deployments use real env vars.
	if os.Getenv("GIN_MODE") != gin.ReleaseMode {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	var zapLogger *zap.Logger
	if appConfig.IsRelease() {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded", zap.String("port", appConfig.Port), zap.String("ginMode", appConfig.GinMode))

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := db.InitFirebase(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()

	verifier, err := auth.NewFirebaseVerifier(clients.Auth)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize identity verifier", zap.Error(err))
	}

	// --- 4. Initialize Repositories ---
	missionRepo := db.NewFirestoreMissionRepository(clients.Firestore, zapLogger)
	userRepo := db.NewFirestoreUserRepository(clients.Firestore, zapLogger)
	activityRepo := db.NewFirestoreActivityRepository(clients.Firestore, zapLogger)

	// --- 5. Completion events ---
	var publisher events.Publisher = events.NopPublisher{}
	if appConfig.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitPublisher(appConfig.RabbitMQURL, appConfig.CompletionQueue, zapLogger)
		if err != nil {
			// Completion events are advisory; the service runs without them.
			zapLogger.Warn("RabbitMQ unavailable, completion events disabled", zap.Error(err))
		} else {
			publisher = rabbit
		}
	} else {
		zapLogger.Info("RABBITMQ_URL not set, completion events disabled")
	}
	defer publisher.Close()

	// --- 6. Initialize Services ---
	activityService := core.NewActivityService(activityRepo)
	services := api.Services{
		Missions:    core.NewMissionService(missionRepo, activityService, publisher, zapLogger),
		Leaderboard: core.NewLeaderboardService(missionRepo, userRepo, zapLogger),
		Users:       core.NewUserService(userRepo, activityService, zapLogger),
	}

	// --- 7. Setup Gin HTTP Engine ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	// --- 8. Apply Global Middleware (order matters) ---
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(metrics.Handler())
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	// --- 9. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		middleware.NewAuthMiddleware(verifier, zapLogger),
		services,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zapLogger.Info("Server exiting gracefully.")
}
