package usecase

import (
	"context"

	"usersync/internal/domain/entity"
)

// Propagation strategies used after a contact change.
const (
	StrategyOrderSync   = "order_sync"   // synchronous call to the order service (v1)
	StrategyChangeEvent = "change_event" // event published to the durable queue (v2)
)

// Propagation describes what happened to the secondary effect of a user update.
// A failed propagation never rolls back the user write.
type Propagation struct {
	Strategy  string
	Attempted bool
	Succeeded bool
	Err       error

	// Populated by the order sync strategy when the order service answered
	MatchedOrders  int64
	ModifiedOrders int64
}

// Failed reports whether propagation was attempted and did not succeed.
func (p Propagation) Failed() bool {
	return p.Attempted && !p.Succeeded
}

// UserUpdateResult is returned by a successful user update.
type UserUpdateResult struct {
	UpdatedFields map[string]string
	Propagation   Propagation
}

// UserUsecase defines the interface shared by both user service versions
type UserUsecase interface {
	// CreateUser upserts the full user document
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)

	// UpdateUser merges the supplied fields into an existing user and propagates
	// any email/address change to the user's orders
	UpdateUser(ctx context.Context, userID string, patch entity.UserPatch) (*UserUpdateResult, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}
