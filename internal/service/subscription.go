package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, customerID uuid.UUID, req *types.CreateSubscriptionRequest) (*models.Subscription, error) {
	if err := customerExists(ctx, s.db, customerID); err != nil {
		return nil, err
	}

	subscription := &models.Subscription{
		CustomerID:   customerID,
		ProductName:  req.ProductName,
		RenewalDate:  req.RenewalDate,
		Value:        req.Value,
		Status:       req.Status,
		BillingCycle: req.BillingCycle,
	}
	if subscription.Status == "" {
		subscription.Status = "healthy"
	}

	if err := s.db.WithContext(ctx).Create(subscription).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return subscription, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := s.db.WithContext(ctx).First(&subscription, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "subscription", id)
	}
	return &subscription, nil
}

// ListSubscriptions returns every subscription, soonest renewal first
func (s *SubscriptionService) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	var subscriptions []*models.Subscription
	if err := s.db.WithContext(ctx).Order("renewal_date ASC").Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subscriptions, nil
}

func (s *SubscriptionService) ListCustomerSubscriptions(ctx context.Context, customerID uuid.UUID) ([]*models.Subscription, error) {
	if err := customerExists(ctx, s.db, customerID); err != nil {
		return nil, err
	}

	var subscriptions []*models.Subscription
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("renewal_date ASC").
		Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subscriptions, nil
}

func customerExists(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up customer: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}
