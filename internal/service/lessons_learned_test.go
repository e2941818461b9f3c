package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/service"
	"github.com/pageza/renewals/backend/internal/testhelpers"
	"github.com/pageza/renewals/backend/internal/types"
	"github.com/pageza/renewals/backend/internal/workflow"
)

func TestLessonsLearnedLifecycle(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	lessons := service.NewLessonsLearnedService(db, workflow.NewLessonsLearnedEngine(), nil)
	customers := service.NewCustomerService(db, nil, nil)
	ctx := context.Background()

	customer, err := customers.CreateCustomer(ctx, &types.CreateCustomerRequest{Name: "Acme", Company: "Acme Corp"})
	require.NoError(t, err)

	lesson, err := lessons.CreateLessonsLearned(ctx, &types.CreateLessonsLearnedRequest{
		Title:      "Missed renewal notice",
		CustomerID: &customer.ID,
		Software:   models.SoftwareUptime360,
	}, "Calvin")
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseInitiate, lesson.Phase)
	assert.Equal(t, "Calvin", lesson.InitiatedBy)

	// No forward guard: every adjacent phase can be entered without a payload
	for _, next := range []workflow.Phase{workflow.PhaseRootCauseAnalysis, workflow.PhaseImplementation, workflow.PhaseClosed} {
		lesson, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{Phase: strPtr(string(next))}, "Calvin")
		require.NoError(t, err)
		assert.Equal(t, next, lesson.Phase)
	}
	assert.Nil(t, lesson.ClosedDate)

	lesson, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{Outcome: strPtr("reminder job added")}, "Anvesh")
	require.NoError(t, err)
	require.NotNil(t, lesson.ClosedDate)
	assert.Equal(t, "Anvesh", lesson.ClosedBy)
	assert.Equal(t, "reminder job added", lesson.Outcome)

	list, err := lessons.ListLessonsLearned(ctx, &models.LessonsLearnedFilters{CustomerID: &customer.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)

	// The customer reference is weak
	require.NoError(t, customers.DeleteCustomer(ctx, customer.ID))
	stored, err := lessons.GetLessonsLearned(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, *stored.CustomerID)
}

func TestLessonsLearnedRejections(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	lessons := service.NewLessonsLearnedService(db, workflow.NewLessonsLearnedEngine(), nil)
	ctx := context.Background()

	lesson, err := lessons.CreateLessonsLearned(ctx, &types.CreateLessonsLearnedRequest{Title: "Outage"}, "Calvin")
	require.NoError(t, err)

	_, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{Phase: strPtr(string(workflow.PhaseImplementation))}, "Calvin")
	assert.ErrorIs(t, err, workflow.ErrSkipAhead)

	_, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{Phase: strPtr(string(workflow.PhaseAnalyze))}, "Calvin")
	assert.ErrorIs(t, err, workflow.ErrUnknownPhase)

	_, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{RootCauseAnalysis: strPtr("cert")}, "Calvin")
	assert.ErrorIs(t, err, workflow.ErrPayloadPhaseMismatch)

	require.NoError(t, lessons.DeleteLessonsLearned(ctx, lesson.ID))
	_, err = lessons.GetLessonsLearned(ctx, lesson.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLessonsLearnedSaveWithEveryPhaseField(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	lessons := service.NewLessonsLearnedService(db, workflow.NewLessonsLearnedEngine(), nil)
	ctx := context.Background()

	lesson, err := lessons.CreateLessonsLearned(ctx, &types.CreateLessonsLearnedRequest{Title: "Expired certificate"}, "Calvin")
	require.NoError(t, err)

	lesson, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{Phase: strPtr(string(workflow.PhaseRootCauseAnalysis))}, "Calvin")
	require.NoError(t, err)

	// The edit form always sends all four fields
	lesson, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{
		RootCauseAnalysis:   strPtr("expired cert"),
		ImplementationPlan:  strPtr(""),
		ImplementationNotes: strPtr(""),
		Outcome:             strPtr(""),
	}, "Calvin")
	require.NoError(t, err)
	assert.Equal(t, workflow.PhaseRootCauseAnalysis, lesson.Phase)
	assert.Equal(t, "expired cert", lesson.RootCauseAnalysis)

	for _, next := range []workflow.Phase{workflow.PhaseImplementation, workflow.PhaseClosed} {
		lesson, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{Phase: strPtr(string(next))}, "Calvin")
		require.NoError(t, err)
	}

	// In Closed the earlier phases' text is resent and ignored
	lesson, err = lessons.UpdateLessonsLearned(ctx, lesson.ID, &types.UpdateLessonsLearnedRequest{
		RootCauseAnalysis:   strPtr("rewritten"),
		ImplementationPlan:  strPtr("automate renewal"),
		ImplementationNotes: strPtr(""),
		Outcome:             strPtr("certificates auto-renew"),
	}, "Anvesh")
	require.NoError(t, err)
	assert.Equal(t, "certificates auto-renew", lesson.Outcome)
	assert.Equal(t, "expired cert", lesson.RootCauseAnalysis)
	assert.Empty(t, lesson.ImplementationPlan)
	require.NotNil(t, lesson.ClosedDate)
	assert.Equal(t, "Anvesh", lesson.ClosedBy)

	stored, err := lessons.GetLessonsLearned(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired cert", stored.RootCauseAnalysis)
	assert.Equal(t, "certificates auto-renew", stored.Outcome)
}
