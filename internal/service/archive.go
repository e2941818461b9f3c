package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/renewals/backend/config"
)

// S3Archive keeps attachment copies in an S3 bucket
type S3Archive struct {
	s3 *config.S3Config
}

func NewS3Archive(s3 *config.S3Config) *S3Archive {
	return &S3Archive{s3: s3}
}

func (a *S3Archive) Store(ctx context.Context, key, mimeType string, content []byte) error {
	if err := a.s3.PutObject(ctx, key, mimeType, content); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

func (a *S3Archive) Remove(ctx context.Context, key string) error {
	if err := a.s3.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (a *S3Archive) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := a.s3.ObjectExists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", key, err)
	}
	return ok, nil
}

func (a *S3Archive) PresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return a.s3.GeneratePresignedURL(ctx, key, expiration)
}

// attachmentKey is the archive object key for a customer's file
func attachmentKey(customerID uuid.UUID) string {
	return "customers/" + customerID.String() + "/attachment"
}
