package impl

import (
	"context"
	"log/slog"

	deliverycontext "usersync/internal/delivery/context"
	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	"usersync/internal/usecase"

	"github.com/pkg/errors"
)

type orderService struct {
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repository.OrderRepository, logger *slog.Logger) usecase.OrderUsecase {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// CreateOrder upserts the full order document
func (s *orderService) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order == nil || order.OrderID == "" {
		return nil, domainerrors.ErrValidation.WithDetails("order_id is required")
	}
	if order.Items == nil {
		order.Items = []any{}
	}

	if err := s.orderRepo.UpsertOrder(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to upsert order")
	}

	return order, nil
}

// GetOrder retrieves an order by id
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// ListOrdersByStatus retrieves all orders with the given status
func (s *orderService) ListOrdersByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindOrdersByStatus(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by status")
	}
	if orders == nil {
		orders = []*entity.Order{}
	}

	return orders, nil
}

// UpdateOrder sets the supplied fields on an existing order
func (s *orderService) UpdateOrder(ctx context.Context, orderID string, patch entity.OrderPatch) (map[string]any, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.ErrNoFieldsToUpdate
	}

	fields := patch.Fields()
	if err := s.orderRepo.UpdateOrderFields(ctx, orderID, fields); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to update order")
	}

	return fields, nil
}

// SyncUser fans the allowed contact fields out to every order of the user.
// Concurrent calls for one user race at the store; the last write wins per field.
func (s *orderService) SyncUser(ctx context.Context, userID string, update map[string]any) (*usecase.SyncUserResult, error) {
	contact := entity.FilterContactFields(update)
	if contact.IsEmpty() {
		return nil, domainerrors.ErrNoSyncFields
	}

	res, err := s.orderRepo.SetContactFieldsByUser(ctx, userID, contact)
	if err != nil {
		return nil, errors.Wrap(err, "failed to synchronize user contact fields")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Synchronized user contact fields across orders",
		slog.String("user_id", userID),
		slog.Int64("matched_orders", res.Matched),
		slog.Int64("modified_orders", res.Modified),
	)

	return &usecase.SyncUserResult{
		UpdatedFields: contact,
		Orders:        res,
	}, nil
}
