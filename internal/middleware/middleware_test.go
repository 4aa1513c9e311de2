package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"operation-theta/internal/auth"
	"operation-theta/internal/models"
)

type fakeVerifier struct {
	tokens map[string]models.Identity
}

func (f fakeVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	if token == "no-email" {
		return models.Identity{}, auth.ErrMissingEmail
	}
	identity, ok := f.tokens[token]
	if !ok {
		return models.Identity{}, auth.ErrInvalidToken
	}
	return identity, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	verifier := fakeVerifier{tokens: map[string]models.Identity{
		"good": {UID: "uid-1", Email: "agent@ktp.org"},
	}}
	m := NewAuthMiddleware(verifier, zaptest.NewLogger(t))

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/private", m.VerifyToken(), func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func TestVerifyToken(t *testing.T) {
	r := newAuthRouter(t)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid bearer", header: "Bearer good", status: http.StatusOK},
		{name: "case insensitive scheme", header: "bearer good", status: http.StatusOK},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "no token", header: "Bearer", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer forged", status: http.StatusUnauthorized},
		{name: "token without email", header: "Bearer no-email", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				var body ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "UNAUTHORIZED", body.Code)
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware(zaptest.NewLogger(t)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL", body.Code)
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := gin.New()
	r.Use(metrics.Handler())
	r.GET("/missions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/missions/1", "/missions/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/missions/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.inFlight))
}

func TestMetricsHandler_CountsPanicsAsServerErrors(t *testing.T) {
	orders := map[string]func(*Metrics) []gin.HandlerFunc{
		"metrics outside recovery": func(m *Metrics) []gin.HandlerFunc {
			return []gin.HandlerFunc{m.Handler(), RecoveryMiddleware(zaptest.NewLogger(t))}
		},
		"metrics inside recovery": func(m *Metrics) []gin.HandlerFunc {
			return []gin.HandlerFunc{RecoveryMiddleware(zaptest.NewLogger(t)), m.Handler()}
		},
	}

	for name, chain := range orders {
		t.Run(name, func(t *testing.T) {
			metrics := NewMetrics(prometheus.NewRegistry())
			r := gin.New()
			r.Use(chain(metrics)...)
			r.GET("/boom", func(c *gin.Context) { panic("boom") })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/boom", "500")))
			assert.Equal(t, 0.0, testutil.ToFloat64(metrics.inFlight))
		})
	}
}
