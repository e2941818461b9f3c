package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) CreateNote(ctx context.Context, customerID uuid.UUID, author string, req *types.CreateNoteRequest) (*models.Note, error) {
	if err := customerExists(ctx, s.db, customerID); err != nil {
		return nil, err
	}

	note := &models.Note{
		CustomerID: customerID,
		Content:    req.Content,
		CreatedBy:  author,
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "note", id)
	}
	return &note, nil
}

// ListCustomerNotes returns a customer's notes, newest first
func (s *NoteService) ListCustomerNotes(ctx context.Context, customerID uuid.UUID) ([]*models.Note, error) {
	if err := customerExists(ctx, s.db, customerID); err != nil {
		return nil, err
	}

	var notes []*models.Note
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
