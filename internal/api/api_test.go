package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/renewals/backend/internal/api"
	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/mocks"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/testhelpers"
	"github.com/pageza/renewals/backend/internal/types"
	"github.com/pageza/renewals/backend/internal/workflow"
)

const testPassword = "password123"

type testApp struct {
	router  *gin.Engine
	archive *mocks.MockAttachmentArchive
}

// newTestApp wires real services over sqlite. Stephen is an admin, Calvin is not.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLite(t)

	users := service.NewUserService(db)
	for _, name := range []string{"Stephen", "Calvin"} {
		_, err := users.CreateUser(context.Background(), &types.CreateUserRequest{Username: name, Password: testPassword})
		require.NoError(t, err)
	}

	archive := &mocks.MockAttachmentArchive{}
	svc := api.Services{
		Auth:           service.NewAuthService(db, "test-jwt-secret"),
		Users:          users,
		Customers:      service.NewCustomerService(db, archive, nil),
		Subscriptions:  service.NewSubscriptionService(db),
		Notes:          service.NewNoteService(db),
		Feedback:       service.NewFeedbackService(db, workflow.NewFeedbackEngine(), nil),
		LessonsLearned: service.NewLessonsLearnedService(db, workflow.NewLessonsLearnedEngine(), nil),
		Dashboard:      service.NewDashboardService(db),
	}

	router := gin.New()
	router.Use(sessions.Sessions("test-session", cookie.NewStore([]byte("test-session-secret"))))
	api.RegisterRoutes(router, svc, middleware.NewAuthorizer([]string{"Stephen"}), nil)

	return &testApp{router: router, archive: archive}
}

func (a *testApp) request(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) requestWithToken(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// login signs in and returns the session cookies
func (a *testApp) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()
	w := a.request(t, http.MethodPost, "/api/login", map[string]string{"username": username, "password": testPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
