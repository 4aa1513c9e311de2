package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"operation-theta/internal/core"
	"operation-theta/internal/middleware"
)

// Services bundles the core services the routes depend on.
type Services struct {
	Missions    core.MissionService
	Leaderboard core.LeaderboardService
	Users       core.UserService
}

// SetupRoutes configures all the application routes with their handlers.
// Global middleware (request ID, logging, recovery, metrics, CORS) is expected
// to be applied to router before this is called. metricsHandler may be nil.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	services Services,
	metricsHandler http.Handler,
) {
	missionHandler := NewMissionHandler(services.Missions, logger)
	userHandler := NewUserHandler(services.Users, services.Leaderboard, logger)

	// The frontend proxy calls /api/v1/...; direct clients use the bare paths.
	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api/v1")} {
		missions := group.Group("/missions")
		{
			missions.GET("", missionHandler.ListMissions)
			missions.GET("/:id", missionHandler.GetMission)
			missions.POST("/:id/complete", authMW.VerifyToken(), missionHandler.CompleteMission)
		}

		users := group.Group("/users")
		{
			users.POST("/register", authMW.VerifyToken(), userHandler.Register)
			users.GET("/profile", authMW.VerifyToken(), userHandler.Profile)
			users.GET("/leaderboard", userHandler.Leaderboard)
		}
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "UP", Message: "Operation Theta backend is healthy."})
	}
	router.GET("/health", health)
	router.GET("/ping", health)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	logger.Info("API routes configured", zap.Int("routes", len(router.Routes())))
}
