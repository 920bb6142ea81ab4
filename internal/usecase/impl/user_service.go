package impl

import (
	"context"
	"log/slog"

	deliverycontext "usersync/internal/delivery/context"
	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	"usersync/internal/domain/service"
	"usersync/internal/usecase"

	"github.com/pkg/errors"
)

// contactPropagator pushes a contact change from a user to that user's orders.
type contactPropagator interface {
	strategy() string
	propagate(ctx context.Context, userID string, fields entity.ContactFields) usecase.Propagation
}

type userService struct {
	userRepo   repository.UserRepository
	propagator contactPropagator
	logger     *slog.Logger
}

// NewUserServiceV1 creates the legacy user service, which synchronizes orders
// with a direct call to the order service.
func NewUserServiceV1(userRepo repository.UserRepository, syncClient service.OrderSyncClient, logger *slog.Logger) usecase.UserUsecase {
	return &userService{
		userRepo:   userRepo,
		propagator: &orderSyncPropagator{client: syncClient},
		logger:     logger,
	}
}

// NewUserServiceV2 creates the event-driven user service, which publishes a
// change event to the durable queue.
func NewUserServiceV2(userRepo repository.UserRepository, publisher service.ChangeEventPublisher, logger *slog.Logger) usecase.UserUsecase {
	return &userService{
		userRepo:   userRepo,
		propagator: &changeEventPropagator{publisher: publisher},
		logger:     logger,
	}
}

// CreateUser upserts the full user document
func (s *userService) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if user == nil || user.UserID == "" {
		return nil, domainerrors.ErrValidation.WithDetails("user_id is required")
	}

	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}

	return user, nil
}

// UpdateUser merges the supplied fields and propagates contact changes.
// A missing user is reported as not found for both versions; nothing is upserted.
func (s *userService) UpdateUser(ctx context.Context, userID string, patch entity.UserPatch) (*usecase.UserUpdateResult, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.ErrNoFieldsToUpdate
	}

	fields := patch.Fields()
	if err := s.userRepo.UpdateUserFields(ctx, userID, fields); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	result := &usecase.UserUpdateResult{
		UpdatedFields: fields,
		Propagation:   usecase.Propagation{Strategy: s.propagator.strategy()},
	}

	contact := patch.ContactFields()
	if contact.IsEmpty() {
		return result, nil
	}

	result.Propagation = s.propagator.propagate(ctx, userID, contact)
	if result.Propagation.Failed() {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("User updated but contact propagation failed",
			slog.String("user_id", userID),
			slog.String("strategy", result.Propagation.Strategy),
			slog.Any("error", result.Propagation.Err),
		)
	}

	return result, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// orderSyncPropagator calls the order service synchronously; at most once, no retry.
type orderSyncPropagator struct {
	client service.OrderSyncClient
}

func (p *orderSyncPropagator) strategy() string {
	return usecase.StrategyOrderSync
}

func (p *orderSyncPropagator) propagate(ctx context.Context, userID string, fields entity.ContactFields) usecase.Propagation {
	result := usecase.Propagation{Strategy: p.strategy(), Attempted: true}

	receipt, err := p.client.SyncUser(ctx, userID, fields)
	if err != nil {
		result.Err = err

		return result
	}

	result.Succeeded = true
	if receipt != nil {
		result.MatchedOrders = receipt.MatchedOrders
		result.ModifiedOrders = receipt.ModifiedOrders
	}

	return result
}

// changeEventPropagator publishes a durable change event.
type changeEventPropagator struct {
	publisher service.ChangeEventPublisher
}

func (p *changeEventPropagator) strategy() string {
	return usecase.StrategyChangeEvent
}

func (p *changeEventPropagator) propagate(ctx context.Context, userID string, fields entity.ContactFields) usecase.Propagation {
	result := usecase.Propagation{Strategy: p.strategy(), Attempted: true}

	event := newChangeEvent(userID, fields, deliverycontext.GetRequestIDFromContext(ctx))
	if err := p.publisher.PublishChangeEvent(ctx, event); err != nil {
		result.Err = err

		return result
	}

	result.Succeeded = true

	return result
}
