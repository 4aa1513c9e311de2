package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"operation-theta/internal/core"
	"operation-theta/internal/models"
	"operation-theta/internal/puzzle"
)

// MissionHandler handles mission endpoints.
type MissionHandler struct {
	missionService core.MissionService
	logger         *zap.Logger
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(ms core.MissionService, logger *zap.Logger) *MissionHandler {
	return &MissionHandler{missionService: ms, logger: logger}
}

// ListMissions handles GET /missions.
func (h *MissionHandler) ListMissions(c *gin.Context) {
	missions, err := h.missionService.ListMissions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to list missions", err)
		return
	}
	if missions == nil {
		missions = []*models.Mission{}
	}
	c.JSON(http.StatusOK, missions)
}

// GetMission handles GET /missions/:id.
func (h *MissionHandler) GetMission(c *gin.Context) {
	mission, err := h.missionService.GetMission(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Mission not available", err)
		return
	}
	c.JSON(http.StatusOK, mission)
}

// CompleteMission handles POST /missions/:id/complete.
func (h *MissionHandler) CompleteMission(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			badRequest(c, "Request body is required", nil)
			return
		}
		badRequest(c, "Invalid request body", err)
		return
	}

	answer := puzzle.Answer{Text: req.Answer, Selections: req.Answers}
	result, err := h.missionService.SubmitAnswer(c.Request.Context(), c.Param("id"), identity, answer)
	if err != nil {
		respondError(c, h.logger, "Failed to submit answer", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
