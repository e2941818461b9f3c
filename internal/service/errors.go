package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned for an unknown username or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for a bearer token that fails validation
	ErrInvalidToken = errors.New("invalid token")
	// ErrUsernameTaken is returned when a username is already in use
	ErrUsernameTaken = errors.New("Username already exists")
	// ErrCannotDeleteSelf is returned when a user tries to delete their own account
	ErrCannotDeleteSelf = errors.New("Cannot delete your own account")
	// ErrNoAttachment is returned when a customer has no stored file
	ErrNoAttachment = errors.New("customer has no attachment")
	// ErrArchiveDisabled is returned when presigned URLs are requested without an archive
	ErrArchiveDisabled = errors.New("attachment archive is not configured")
)

// notFound converts gorm's missing-record error into ErrNotFound
func notFound(err error, kind string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", kind, err)
}
