package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IUserService defines the interface for user management
type IUserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *types.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actingUserID, id uuid.UUID) error
}

// ICustomerService defines the interface for customer operations
type ICustomerService interface {
	CreateCustomer(ctx context.Context, req *types.CreateCustomerRequest) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context, filters *models.CustomerFilters) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req *types.UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	GetAttachment(ctx context.Context, id uuid.UUID) (*CustomerAttachment, error)
	AttachmentURL(ctx context.Context, id uuid.UUID) (string, time.Time, error)
}

// ISubscriptionService defines the interface for subscription operations
type ISubscriptionService interface {
	CreateSubscription(ctx context.Context, customerID uuid.UUID, req *types.CreateSubscriptionRequest) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	ListCustomerSubscriptions(ctx context.Context, customerID uuid.UUID) ([]*models.Subscription, error)
}

// INoteService defines the interface for customer notes
type INoteService interface {
	CreateNote(ctx context.Context, customerID uuid.UUID, author string, req *types.CreateNoteRequest) (*models.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListCustomerNotes(ctx context.Context, customerID uuid.UUID) ([]*models.Note, error)
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, actingUser string) (*models.Feedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error)
	UpdateFeedback(ctx context.Context, id uuid.UUID, req *types.UpdateFeedbackRequest, actingUser string) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

// ILessonsLearnedService defines the interface for lessons-learned operations
type ILessonsLearnedService interface {
	CreateLessonsLearned(ctx context.Context, req *types.CreateLessonsLearnedRequest, actingUser string) (*models.LessonsLearned, error)
	GetLessonsLearned(ctx context.Context, id uuid.UUID) (*models.LessonsLearned, error)
	ListLessonsLearned(ctx context.Context, filters *models.LessonsLearnedFilters) ([]*models.LessonsLearned, error)
	UpdateLessonsLearned(ctx context.Context, id uuid.UUID, req *types.UpdateLessonsLearnedRequest, actingUser string) (*models.LessonsLearned, error)
	DeleteLessonsLearned(ctx context.Context, id uuid.UUID) error
}

// IDashboardService defines the interface for dashboard statistics
type IDashboardService interface {
	GetStats(ctx context.Context) (*types.DashboardStats, error)
}

// AttachmentArchive stores copies of admitted attachment bytes outside the database
type AttachmentArchive interface {
	Store(ctx context.Context, key, mimeType string, content []byte) error
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
