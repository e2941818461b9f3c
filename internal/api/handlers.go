package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/service"
)

// Services bundles what the HTTP layer needs
type Services struct {
	Auth           service.IAuthService
	Users          service.IUserService
	Customers      service.ICustomerService
	Subscriptions  service.ISubscriptionService
	Notes          service.INoteService
	Feedback       service.IFeedbackService
	LessonsLearned service.ILessonsLearnedService
	Dashboard      service.IDashboardService
	// Health reports whether backing stores are reachable; nil means always healthy
	Health func(ctx context.Context) error
}

// HealthCheck returns the health status of the API
func HealthCheck(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes registers all API routes under /api. loginLimiter may be nil.
func RegisterRoutes(router *gin.Engine, svc Services, authz *middleware.Authorizer, loginLimiter *middleware.RateLimiter) {
	RegisterValidators()

	router.GET("/health", HealthCheck(svc.Health))
	router.GET("/api/health", HealthCheck(svc.Health))

	api := router.Group("/api")
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(svc.Auth))

	NewAuthHandler(svc.Auth, svc.Users, authz, loginLimiter).RegisterRoutes(api, protected)
	NewUserHandler(svc.Users, authz).RegisterRoutes(protected)
	NewCustomerHandler(svc.Customers).RegisterRoutes(protected)
	NewSubscriptionHandler(svc.Subscriptions).RegisterRoutes(protected)
	NewNoteHandler(svc.Notes).RegisterRoutes(protected)
	NewFeedbackHandler(svc.Feedback).RegisterRoutes(protected)
	NewLessonsLearnedHandler(svc.LessonsLearned).RegisterRoutes(protected)
	NewDashboardHandler(svc.Dashboard).RegisterRoutes(protected)
}
