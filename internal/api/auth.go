package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type AuthHandler struct {
	auth    service.IAuthService
	users   service.IUserService
	authz   *middleware.Authorizer
	limiter *middleware.RateLimiter
}

func NewAuthHandler(auth service.IAuthService, users service.IUserService, authz *middleware.Authorizer, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		users:   users,
		authz:   authz,
		limiter: limiter,
	}
}

// RegisterRoutes mounts login and token issuance on public and the current
// user lookup on protected
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	throttled := public.Group("")
	if h.limiter != nil {
		throttled.Use(h.limiter.Middleware())
	}
	throttled.POST("/login", h.Login)
	throttled.POST("/token", h.Token)
	public.POST("/logout", h.Logout)

	protected.GET("/user", h.CurrentUser)
}

// Login checks credentials and starts a cookie session
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.UserIDKey, user.ID.String())
	session.Set(middleware.UsernameKey, user.Username)
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.userResponse(user))
}

// Token exchanges credentials for a bearer token
func (h *AuthHandler) Token(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.userResponse(user))
}

func (h *AuthHandler) userResponse(user *models.User) types.UserResponse {
	return toUserResponse(user, h.authz)
}

func toUserResponse(user *models.User, authz *middleware.Authorizer) types.UserResponse {
	return types.UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		CreatedAt:      user.CreatedAt,
		CanManageUsers: authz.Can(user.Username, middleware.CapabilityManageUsers),
	}
}
