package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/renewals/backend/config"
	"github.com/pageza/renewals/backend/internal/api"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/testhelpers"
)

func newRouter(t *testing.T, health func(ctx context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{
		SessionSecret: "router-test-session-secret-0123456789",
		CORSOrigins:   []string{"http://localhost:5173"},
	}
	svc := api.Services{
		Auth:   service.NewAuthService(db, "router-test-jwt"),
		Users:  service.NewUserService(db),
		Health: health,
	}
	return SetupRouter(cfg, nil, svc, nil)
}

func TestHealthRoutes(t *testing.T) {
	r := newRouter(t, nil)

	for _, path := range []string{"/health", "/api/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestUnhealthyStore(t *testing.T) {
	r := newRouter(t, func(context.Context) error { return errors.New("db down") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	r := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
