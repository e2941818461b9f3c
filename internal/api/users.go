package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type UserHandler struct {
	users service.IUserService
	authz *middleware.Authorizer
}

func NewUserHandler(users service.IUserService, authz *middleware.Authorizer) *UserHandler {
	return &UserHandler{users: users, authz: authz}
}

// RegisterRoutes mounts user management behind the manage_users capability
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.RequireCapability(h.authz, middleware.CapabilityManageUsers))
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]types.UserResponse, len(users))
	for i, user := range users {
		responses[i] = toUserResponse(user, h.authz)
	}
	c.JSON(http.StatusOK, responses)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user, h.authz))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req types.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user, h.authz))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	actingUserID, _ := middleware.CurrentUserID(c)

	if err := h.users.DeleteUser(c.Request.Context(), actingUserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
