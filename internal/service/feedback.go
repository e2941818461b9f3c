package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
	"github.com/pageza/renewals/backend/internal/workflow"
)

type FeedbackService struct {
	db     *gorm.DB
	engine *workflow.Engine
	log    *zap.Logger
	now    func() time.Time
}

func NewFeedbackService(db *gorm.DB, engine *workflow.Engine, log *zap.Logger) *FeedbackService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedbackService{
		db:     db,
		engine: engine,
		log:    log.Named("feedback"),
		now:    time.Now,
	}
}

// CreateFeedback records a new item. It always starts in the engine's
// initial phase regardless of the request.
func (s *FeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, actingUser string) (*models.Feedback, error) {
	submittedBy := strings.TrimSpace(req.SubmittedBy)
	if submittedBy == "" {
		submittedBy = actingUser
	}

	feedback := &models.Feedback{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		AppName:       req.AppName,
		Software:      req.Software,
		FeedbackText:  req.FeedbackText,
		Phase:         s.engine.InitialPhase(),
		SubmittedBy:   submittedBy,
		SubmittedDate: s.now(),
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.db.WithContext(ctx).First(&feedback, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "feedback", id)
	}
	return &feedback, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error) {
	query := s.db.WithContext(ctx)

	if filters != nil {
		if filters.Software != "" {
			query = query.Where("software = ?", filters.Software)
		}
		if filters.Phase != "" {
			query = query.Where("phase = ?", filters.Phase)
		}
	}

	var feedback []*models.Feedback
	if err := query.Order("submitted_date DESC").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

// UpdateFeedback patches plain fields and routes phase changes and phase
// payloads through the workflow engine. Nothing is written when the engine
// rejects the change.
//
// The read and the write are not isolated; concurrent updates are last-write-wins.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id uuid.UUID, req *types.UpdateFeedbackRequest, actingUser string) (*models.Feedback, error) {
	feedback, err := s.GetFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	from := feedback.Phase

	fields := phaseFields{
		Analysis:            req.Analysis,
		ImplementationPlan:  req.ImplementationPlan,
		ImplementationNotes: req.ImplementationNotes,
		Outcome:             req.Outcome,
	}
	pending, err := fields.update()
	if err != nil {
		return nil, err
	}
	if err := applyPhaseChange(s.engine, feedback, req.Phase, pending, actingUser); err != nil {
		return nil, err
	}

	patchString(&feedback.CustomerName, req.CustomerName)
	patchString(&feedback.AppName, req.AppName)
	patchString(&feedback.Software, req.Software)
	patchString(&feedback.FeedbackText, req.FeedbackText)

	if err := s.db.WithContext(ctx).Save(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}

	if feedback.Phase != from {
		s.log.Info("feedback phase changed",
			zap.String("id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(feedback.Phase)),
			zap.String("by", actingUser))
	}
	return feedback, nil
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Feedback{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}
	return nil
}
