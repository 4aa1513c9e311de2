package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"operation-theta/internal/core"
	"operation-theta/internal/middleware"
	"operation-theta/internal/models"
)

// Stable machine-readable error codes.
const (
	CodeNotFound              = "NOT_FOUND"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeRepositoryUnavailable = "REPOSITORY_UNAVAILABLE"
	CodeInternal              = "INTERNAL"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by the liveness endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// statusFor maps core errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, core.ErrRepositoryUnavailable):
		return http.StatusServiceUnavailable, CodeRepositoryUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes the mapped error reply. Internal failures are logged and
// their details withheld from the client.
func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: msg, Code: code}

	switch status {
	case http.StatusInternalServerError:
		logger.Error(msg, zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		resp.Error = "An unexpected internal server error occurred."
	case http.StatusServiceUnavailable:
		logger.Warn(msg, zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
	default:
		resp.Details = err.Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: CodeInvalidInput}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

// identityOrAbort returns the verified identity set by the auth middleware.
func identityOrAbort(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Authentication error: identity not found in context",
			Code:  CodeUnauthorized,
		})
	}
	return identity, ok
}
