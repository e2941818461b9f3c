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

type LessonsLearnedService struct {
	db     *gorm.DB
	engine *workflow.Engine
	log    *zap.Logger
	now    func() time.Time
}

func NewLessonsLearnedService(db *gorm.DB, engine *workflow.Engine, log *zap.Logger) *LessonsLearnedService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LessonsLearnedService{
		db:     db,
		engine: engine,
		log:    log.Named("lessons_learned"),
		now:    time.Now,
	}
}

func (s *LessonsLearnedService) CreateLessonsLearned(ctx context.Context, req *types.CreateLessonsLearnedRequest, actingUser string) (*models.LessonsLearned, error) {
	initiatedBy := strings.TrimSpace(req.InitiatedBy)
	if initiatedBy == "" {
		initiatedBy = actingUser
	}

	lesson := &models.LessonsLearned{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Phase:         s.engine.InitialPhase(),
		CustomerID:    req.CustomerID,
		Software:      req.Software,
		InitiatedBy:   initiatedBy,
		InitiatedDate: s.now(),
	}

	if err := s.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, fmt.Errorf("failed to create lessons learned: %w", err)
	}
	return lesson, nil
}

func (s *LessonsLearnedService) GetLessonsLearned(ctx context.Context, id uuid.UUID) (*models.LessonsLearned, error) {
	var lesson models.LessonsLearned
	if err := s.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "lessons learned", id)
	}
	return &lesson, nil
}

func (s *LessonsLearnedService) ListLessonsLearned(ctx context.Context, filters *models.LessonsLearnedFilters) ([]*models.LessonsLearned, error) {
	query := s.db.WithContext(ctx)

	if filters != nil {
		if filters.Software != "" {
			query = query.Where("software = ?", filters.Software)
		}
		if filters.Phase != "" {
			query = query.Where("phase = ?", filters.Phase)
		}
		if filters.CustomerID != nil {
			query = query.Where("customer_id = ?", *filters.CustomerID)
		}
	}

	var lessons []*models.LessonsLearned
	if err := query.Order("initiated_date DESC").Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("failed to list lessons learned: %w", err)
	}
	return lessons, nil
}

// UpdateLessonsLearned patches plain fields and routes phase changes and
// phase payloads through the workflow engine. Fields of phases other than the
// current one are ignored. Saving the Closed payload stamps closure.
func (s *LessonsLearnedService) UpdateLessonsLearned(ctx context.Context, id uuid.UUID, req *types.UpdateLessonsLearnedRequest, actingUser string) (*models.LessonsLearned, error) {
	lesson, err := s.GetLessonsLearned(ctx, id)
	if err != nil {
		return nil, err
	}
	from := lesson.Phase

	fields := phaseFields{
		RootCauseAnalysis:   req.RootCauseAnalysis,
		ImplementationPlan:  req.ImplementationPlan,
		ImplementationNotes: req.ImplementationNotes,
		Outcome:             req.Outcome,
	}
	// The client sends every phase field on save; only the current phase's apply.
	pending, err := fields.scopedTo(lesson.Phase)
	if err != nil {
		return nil, err
	}
	if err := applyPhaseChange(s.engine, lesson, req.Phase, pending, actingUser); err != nil {
		return nil, err
	}

	patchString(&lesson.Title, req.Title)
	patchString(&lesson.Description, req.Description)
	patchString(&lesson.Software, req.Software)
	if req.CustomerID != nil {
		lesson.CustomerID = req.CustomerID
	}

	if err := s.db.WithContext(ctx).Save(lesson).Error; err != nil {
		return nil, fmt.Errorf("failed to update lessons learned: %w", err)
	}

	if lesson.Phase != from {
		s.log.Info("lessons learned phase changed",
			zap.String("id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(lesson.Phase)),
			zap.String("by", actingUser))
	}
	return lesson, nil
}

func (s *LessonsLearnedService) DeleteLessonsLearned(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.LessonsLearned{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lessons learned: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("lessons learned %s: %w", id, ErrNotFound)
	}
	return nil
}
