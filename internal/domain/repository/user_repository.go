// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"usersync/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the interface for user document operations.
type UserRepository interface {
	// UpsertUser creates the user or fully replaces the existing document with the same user_id.
	UpsertUser(ctx context.Context, user *entity.User) error

	// FindUserByID retrieves a user by its user_id.
	FindUserByID(ctx context.Context, userID string) (*entity.User, error)

	// UpdateUserFields sets only the given fields on an existing user.
	// Returns ErrUserNotFound when no document matches.
	UpdateUserFields(ctx context.Context, userID string, fields map[string]string) error
}
