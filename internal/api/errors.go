package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/renewals/backend/internal/attachment"
	"github.com/pageza/renewals/backend/internal/middleware"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/workflow"
)

// GuardFailureResponse is the 422 body for a blocked phase transition
type GuardFailureResponse struct {
	Error string         `json:"error"`
	Field workflow.Field `json:"field"`
	Phase workflow.Phase `json:"phase"`
}

// respondError maps a service error to its HTTP status. Unexpected errors are
// attached to the context for the request logger and reported as 500.
func respondError(c *gin.Context, err error) {
	var guard *workflow.GuardFailure
	switch {
	case errors.As(err, &guard):
		c.JSON(http.StatusUnprocessableEntity, GuardFailureResponse{
			Error: guard.Error(),
			Field: guard.Field,
			Phase: guard.Phase,
		})
	case errors.Is(err, workflow.ErrSkipAhead),
		errors.Is(err, workflow.ErrUnknownPhase),
		errors.Is(err, workflow.ErrPayloadPhaseMismatch),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrCannotDeleteSelf),
		attachment.IsRejection(err):
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoAttachment):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "Invalid username or password"})
	case errors.Is(err, service.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, middleware.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
	}
}

// bindJSON decodes the body into req and writes a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "software":
			msgs = append(msgs, fmt.Sprintf("%s must be one of Uptime360, ViewPoint", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// paramID parses the :id path parameter and writes a 400 when malformed
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "Invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}
