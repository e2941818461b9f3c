package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockAttachmentArchive is a mock implementation of service.AttachmentArchive
type MockAttachmentArchive struct {
	mock.Mock
}

func (m *MockAttachmentArchive) Store(ctx context.Context, key, mimeType string, content []byte) error {
	args := m.Called(ctx, key, mimeType, content)
	return args.Error(0)
}

func (m *MockAttachmentArchive) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAttachmentArchive) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttachmentArchive) PresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}
