package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/config"
	"github.com/pageza/renewals/backend/internal/api"
	"github.com/pageza/renewals/backend/internal/database"
	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/router"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/testhelpers"
	"github.com/pageza/renewals/backend/internal/types"
	"github.com/pageza/renewals/backend/internal/workflow"
)

// setupRouter builds the production router over a Postgres container
func setupRouter(t *testing.T, limiter *middleware.RateLimiter) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	users := service.NewUserService(db)
	_, err := users.CreateUser(context.Background(), &types.CreateUserRequest{Username: "Stephen", Password: "password123"})
	require.NoError(t, err)

	cfg := &config.Config{
		SessionSecret: "integration-session-secret-0123456789",
		AdminUsers:    []string{"Stephen"},
		CORSOrigins:   []string{"http://localhost:5173"},
	}
	svc := api.Services{
		Auth:           service.NewAuthService(db, "integration-jwt-secret"),
		Users:          users,
		Customers:      service.NewCustomerService(db, nil, nil),
		Subscriptions:  service.NewSubscriptionService(db),
		Notes:          service.NewNoteService(db),
		Feedback:       service.NewFeedbackService(db, workflow.NewFeedbackEngine(), nil),
		LessonsLearned: service.NewLessonsLearnedService(db, workflow.NewLessonsLearnedEngine(), nil),
		Dashboard:      service.NewDashboardService(db),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	return router.SetupRouter(cfg, nil, svc, limiter), db
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	if body == nil {
		raw = nil
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFeedbackLifecycleOnPostgres(t *testing.T) {
	r, db := setupRouter(t, nil)

	w := do(t, r, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/login", map[string]string{"username": "Stephen", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()

	w = do(t, r, http.MethodPost, "/api/feedback", map[string]string{
		"customerName": "Acme", "software": "ViewPoint", "feedbackText": "slow exports",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	path := "/api/feedback/" + item.ID.String()

	w = do(t, r, http.MethodPatch, path, map[string]string{"phase": "Implementation"}, cookies)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, step := range []map[string]string{
		{"phase": "Implementation", "analysis": "missing index"},
		{"phase": "Closed", "implementationPlan": "add index"},
		{"outcome": "exports under a second"},
	} {
		w = do(t, r, http.MethodPatch, path, step, cookies)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var stored models.Feedback
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, workflow.PhaseClosed, stored.Phase)
	assert.Equal(t, "exports under a second", stored.Outcome)
	assert.Equal(t, "Stephen", stored.ClosedBy)
	require.NotNil(t, stored.ClosedDate)
}

func TestLoginThrottling(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	r, _ := setupRouter(t, middleware.NewLoginRateLimiter(client, 3, nil))

	var last int
	for i := 0; i < 5; i++ {
		w := do(t, r, http.MethodPost, "/api/login", map[string]string{"username": "Stephen", "password": "wrong"}, nil)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
