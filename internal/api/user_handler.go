package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"operation-theta/internal/core"
	"operation-theta/internal/models"
)

// UserHandler handles user profile and leaderboard endpoints.
type UserHandler struct {
	userService        core.UserService
	leaderboardService core.LeaderboardService
	logger             *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, ls core.LeaderboardService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, leaderboardService: ls, logger: logger}
}

// Register handles POST /users/register. It answers 201 when the profile is
// created and 200 when an existing one is updated. An empty body is allowed.
func (h *UserHandler) Register(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body", err)
		return
	}

	user, created, err := h.userService.Register(c.Request.Context(), identity, req.DisplayName, req.PhotoURL)
	if err != nil {
		respondError(c, h.logger, "Failed to register user", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// Profile handles GET /users/profile.
func (h *UserHandler) Profile(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	profile, err := h.leaderboardService.ProfileFor(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.logger, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Leaderboard handles GET /users/leaderboard.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	entries, err := h.leaderboardService.Compute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to compute leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
