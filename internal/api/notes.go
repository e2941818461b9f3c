package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/types"
)

type NoteHandler struct {
	notes service.INoteService
}

func NewNoteHandler(notes service.INoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/customers/:id/notes", h.ListNotes)
	router.POST("/customers/:id/notes", h.CreateNote)
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}

	notes, err := h.notes.ListCustomerNotes(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// CreateNote records a note authored by the signed-in user
func (h *NoteHandler) CreateNote(c *gin.Context) {
	customerID, ok := paramID(c)
	if !ok {
		return
	}
	var req types.CreateNoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), customerID, middleware.CurrentUsername(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}
