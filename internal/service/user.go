package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "user", username)
	}
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if err := s.ensureUsernameFree(ctx, username, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *types.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := s.ensureUsernameFree(ctx, username, id); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetPassword replaces the password of the named user
func (s *UserService) SetPassword(ctx context.Context, username, password string) error {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	_, err = s.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Password: &password})
	return err
}

func (s *UserService) DeleteUser(ctx context.Context, actingUserID, id uuid.UUID) error {
	if actingUserID == id {
		return ErrCannotDeleteSelf
	}

	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// ensureUsernameFree fails unless username is unused or belongs to self
func (s *UserService) ensureUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	existing, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrUsernameTaken
	}
	return nil
}
