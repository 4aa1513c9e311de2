package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"operation-theta/internal/auth"
	"operation-theta/internal/models"
)

const identityKey = "identity"

// ErrorResponse mirrors api.ErrorResponse; it is defined here to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for bearer token authentication.
type AuthMiddleware struct {
	verifier auth.IdentityVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(verifier auth.IdentityVerifier, logger *zap.Logger) *AuthMiddleware {
	if verifier == nil {
		panic("AuthMiddleware requires a non-nil IdentityVerifier")
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// VerifyToken verifies the token from the Authorization header. If valid, the
// identity is stored in the Gin context for downstream handlers.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header format must be 'Bearer {token}'")
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warn("Token verification failed",
				zap.String("request_id", RequestID(c)),
				zap.Error(err))
			if errors.Is(err, auth.ErrMissingEmail) {
				abortUnauthorized(c, "Authentication token has no verified email")
				return
			}
			abortUnauthorized(c, "Invalid or expired authentication token")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by VerifyToken.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msg, Code: "UNAUTHORIZED"})
}
