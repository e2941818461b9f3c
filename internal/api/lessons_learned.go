package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type LessonsLearnedHandler struct {
	lessons service.ILessonsLearnedService
}

func NewLessonsLearnedHandler(lessons service.ILessonsLearnedService) *LessonsLearnedHandler {
	return &LessonsLearnedHandler{lessons: lessons}
}

func (h *LessonsLearnedHandler) RegisterRoutes(router *gin.RouterGroup) {
	lessons := router.Group("/lessons-learned")
	{
		lessons.GET("", h.ListLessonsLearned)
		lessons.POST("", h.CreateLessonsLearned)
		lessons.GET("/:id", h.GetLessonsLearned)
		lessons.PATCH("/:id", h.UpdateLessonsLearned)
		lessons.DELETE("/:id", h.DeleteLessonsLearned)
	}
}

// ListLessonsLearned supports ?software=, ?phase= and ?customerId=
func (h *LessonsLearnedHandler) ListLessonsLearned(c *gin.Context) {
	filters := &models.LessonsLearnedFilters{
		Software: c.Query("software"),
		Phase:    c.Query("phase"),
	}
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "Invalid customerId"})
			return
		}
		filters.CustomerID = &customerID
	}

	lessons, err := h.lessons.ListLessonsLearned(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *LessonsLearnedHandler) CreateLessonsLearned(c *gin.Context) {
	var req types.CreateLessonsLearnedRequest
	if !bindJSON(c, &req) {
		return
	}

	lesson, err := h.lessons.CreateLessonsLearned(c.Request.Context(), &req, middleware.CurrentUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *LessonsLearnedHandler) GetLessonsLearned(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	lesson, err := h.lessons.GetLessonsLearned(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *LessonsLearnedHandler) UpdateLessonsLearned(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req types.UpdateLessonsLearnedRequest
	if !bindJSON(c, &req) {
		return
	}

	lesson, err := h.lessons.UpdateLessonsLearned(c.Request.Context(), id, &req, middleware.CurrentUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *LessonsLearnedHandler) DeleteLessonsLearned(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.lessons.DeleteLessonsLearned(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
