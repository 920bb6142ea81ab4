package repository

import (
	"context"

	"usersync/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
)

// BulkUpdateResult reports the effect of a multi-document update.
type BulkUpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// OrderRepository defines the interface for order document operations.
type OrderRepository interface {
	// UpsertOrder creates the order or overwrites the document with the same order_id.
	UpsertOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order by its order_id.
	FindOrderByID(ctx context.Context, orderID string) (*entity.Order, error)

	// FindOrdersByStatus retrieves all orders carrying the given status.
	FindOrdersByStatus(ctx context.Context, status string) ([]*entity.Order, error)

	// FindOrdersByUser retrieves all orders owned by the given user.
	FindOrdersByUser(ctx context.Context, userID string) ([]*entity.Order, error)

	// UpdateOrderFields sets only the given fields on an existing order.
	// Returns ErrOrderNotFound when no document matches.
	UpdateOrderFields(ctx context.Context, orderID string, fields map[string]any) error

	// SetContactFieldsByUser overwrites the contact fields on every order of the user.
	// It is not atomic across the matched set; re-running it converges.
	SetContactFieldsByUser(ctx context.Context, userID string, fields entity.ContactFields) (BulkUpdateResult, error)
}
