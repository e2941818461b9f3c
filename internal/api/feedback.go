package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.GET("", h.ListFeedback)
		feedback.POST("", h.CreateFeedback)
		feedback.GET("/:id", h.GetFeedback)
		feedback.PATCH("/:id", h.UpdateFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
	}
}

// ListFeedback supports ?software= and ?phase=
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	filters := &models.FeedbackFilters{
		Software: c.Query("software"),
		Phase:    c.Query("phase"),
	}

	feedbackList, err := h.feedbackService.ListFeedback(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedbackList)
}

// CreateFeedback records a new item. Any phase in the body is ignored.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.CreateFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req, middleware.CurrentUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// UpdateFeedback applies a PATCH. A blocked transition answers 422 with the
// missing field and the phase that was requested.
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req types.UpdateFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	feedback, err := h.feedbackService.UpdateFeedback(c.Request.Context(), id, &req, middleware.CurrentUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.feedbackService.DeleteFeedback(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
