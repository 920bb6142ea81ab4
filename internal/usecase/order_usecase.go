package usecase

import (
	"context"

	"usersync/internal/domain/entity"
	"usersync/internal/domain/repository"
)

// SyncUserResult reports a contact fan-out over a user's orders
type SyncUserResult struct {
	UpdatedFields entity.ContactFields
	Orders        repository.BulkUpdateResult
}

// OrderUsecase defines the interface for the order service
type OrderUsecase interface {
	// CreateOrder upserts the full order document
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)

	// GetOrder retrieves an order by id
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)

	// ListOrdersByStatus retrieves all orders with the given status
	ListOrdersByStatus(ctx context.Context, status string) ([]*entity.Order, error)

	// UpdateOrder sets the supplied fields on an existing order and returns them
	UpdateOrder(ctx context.Context, orderID string, patch entity.OrderPatch) (map[string]any, error)

	// SyncUser overwrites the allowed contact fields on every order of the user.
	// Unknown keys are ignored.
	SyncUser(ctx context.Context, userID string, update map[string]any) (*SyncUserResult, error)
}
