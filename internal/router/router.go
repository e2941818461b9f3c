package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/renewals/backend/config"
	"github.com/pageza/renewals/backend/internal/api"
	"github.com/pageza/renewals/backend/internal/middleware"
)

// SessionName is the name of the login session cookie
const SessionName = "renewals_session"

// SessionMaxAge is how long a login session lasts, in seconds
const SessionMaxAge = 7 * 24 * 60 * 60

// SetupRouter configures the application routes. loginLimiter may be nil.
func SetupRouter(cfg *config.Config, log *zap.Logger, svc api.Services, loginLimiter *middleware.RateLimiter) *gin.Engine {
	production := config.GetEnvironment() == config.Production
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(SessionName, store))

	api.RegisterRoutes(router, svc, middleware.NewAuthorizer(cfg.AdminUsers), loginLimiter)
	return router
}
