package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/renewals/backend/internal/api"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/workflow"
)

func TestFeedbackWorkflowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Stephen")

	w := app.request(t, http.MethodPost, "/api/feedback", map[string]interface{}{
		"customerName": "Acme",
		"software":     "Uptime360",
		"feedbackText": "alerts arrive late",
		"phase":        "Closed",
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.Feedback
	decode(t, w, &item)
	assert.Equal(t, workflow.PhaseAnalyze, item.Phase)
	assert.Equal(t, "Stephen", item.SubmittedBy)
	path := "/api/feedback/" + item.ID.String()

	w = app.request(t, http.MethodPatch, path, map[string]string{"phase": "Implementation", "analysis": "  "}, cookies)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var guard api.GuardFailureResponse
	decode(t, w, &guard)
	assert.Equal(t, workflow.FieldAnalysis, guard.Field)
	assert.Equal(t, workflow.PhaseImplementation, guard.Phase)
	assert.NotEmpty(t, guard.Error)

	w = app.request(t, http.MethodPatch, path, map[string]string{"phase": "Closed"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodPatch, path, map[string]string{"phase": "Initiate"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodPatch, path, map[string]string{"outcome": "done"}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodGet, path, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &item)
	assert.Equal(t, workflow.PhaseAnalyze, item.Phase)

	w = app.request(t, http.MethodPatch, path, map[string]string{"phase": "Implementation", "analysis": "queue backlog"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.request(t, http.MethodPatch, path, map[string]string{"phase": "Closed", "implementationPlan": "scale workers"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &item)
	assert.Equal(t, workflow.PhaseClosed, item.Phase)
	require.NotNil(t, item.ClosedDate)
	assert.Equal(t, "Stephen", item.ClosedBy)

	w = app.request(t, http.MethodGet, "/api/feedback?phase=Closed", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var closed []models.Feedback
	decode(t, w, &closed)
	assert.Len(t, closed, 1)

	w = app.request(t, http.MethodDelete, path, nil, cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.request(t, http.MethodGet, path, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFeedbackValidation(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Calvin")

	w := app.request(t, http.MethodPost, "/api/feedback", map[string]interface{}{
		"customerName": "Acme",
		"feedbackText": "x",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "software is required")
}

func TestLessonsLearnedOverHTTP(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t, "Calvin")

	w := app.request(t, http.MethodPost, "/api/lessons-learned", map[string]interface{}{"title": "Missed renewal"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var lesson models.LessonsLearned
	decode(t, w, &lesson)
	assert.Equal(t, workflow.PhaseInitiate, lesson.Phase)
	path := "/api/lessons-learned/" + lesson.ID.String()

	for _, phase := range []string{"Root Cause Analysis", "Implementation", "Closed"} {
		w = app.request(t, http.MethodPatch, path, map[string]string{"phase": phase}, cookies)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = app.request(t, http.MethodPatch, path, map[string]string{
		"rootCauseAnalysis":   "",
		"implementationPlan":  "",
		"implementationNotes": "",
		"outcome":             "calendar alerts",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &lesson)
	assert.Equal(t, "calendar alerts", lesson.Outcome)
	require.NotNil(t, lesson.ClosedDate)
	assert.Equal(t, "Calvin", lesson.ClosedBy)

	w = app.request(t, http.MethodGet, "/api/lessons-learned?customerId=bad", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.request(t, http.MethodGet, "/api/lessons-learned", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, http.MethodDelete, path, nil, cookies)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	w := app.request(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
