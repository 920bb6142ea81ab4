package memdoc

import (
	"context"
	"io"

	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	"usersync/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gocloud.dev/docstore"
)

type orderRepository struct {
	coll *docstore.Collection
}

// NewOrderRepository opens the orders collection described by the store configuration.
func NewOrderRepository(params Params) (repository.OrderRepository, error) {
	coll, err := openManaged(params.Lifecycle, params.Logger, model.FieldOrderID, params.Config.Store.Orders)
	if err != nil {
		return nil, err
	}

	return NewOrderRepositoryFromCollection(coll), nil
}

// NewOrderRepositoryFromCollection wraps an already opened collection keyed by order_id.
func NewOrderRepositoryFromCollection(coll *docstore.Collection) repository.OrderRepository {
	return &orderRepository{coll: coll}
}

func (repo *orderRepository) UpsertOrder(ctx context.Context, order *entity.Order) error {
	if err := repo.coll.Put(ctx, model.FromDomainOrder(order)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert order")
	}

	return nil
}

func (repo *orderRepository) FindOrderByID(ctx context.Context, orderID string) (*entity.Order, error) {
	orderM := &model.OrderModel{OrderID: orderID}
	if err := repo.coll.Get(ctx, orderM); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return orderM.ToDomain(), nil
}

func (repo *orderRepository) FindOrdersByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	models, err := repo.query(ctx, model.FieldStatus, status)
	if err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, 0, len(models))
	for _, m := range models {
		orders = append(orders, m.ToDomain())
	}

	return orders, nil
}

func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	models, err := repo.query(ctx, model.FieldUserID, userID)
	if err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, 0, len(models))
	for _, m := range models {
		orders = append(orders, m.ToDomain())
	}

	return orders, nil
}

func (repo *orderRepository) query(ctx context.Context, field, value string) ([]*model.OrderModel, error) {
	iter := repo.coll.Query().Where(docstore.FieldPath(field), "=", value).Get(ctx)
	defer iter.Stop()

	var models []*model.OrderModel
	for {
		orderM := &model.OrderModel{}
		err := iter.Next(ctx, orderM)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to query orders by %s", field)
		}
		models = append(models, orderM)
	}

	return models, nil
}

func (repo *orderRepository) UpdateOrderFields(ctx context.Context, orderID string, fields map[string]any) error {
	mods := make(docstore.Mods, len(fields))
	for k, v := range fields {
		mods[docstore.FieldPath(k)] = v
	}

	if err := repo.coll.Update(ctx, &model.OrderModel{OrderID: orderID}, mods); err != nil {
		if isNotFound(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}

	return nil
}

// SetContactFieldsByUser updates each of the user's orders in one action list.
// Orders already holding the values count as matched but not modified.
func (repo *orderRepository) SetContactFieldsByUser(ctx context.Context, userID string, fields entity.ContactFields) (repository.BulkUpdateResult, error) {
	models, err := repo.query(ctx, model.FieldUserID, userID)
	if err != nil {
		return repository.BulkUpdateResult{}, err
	}

	result := repository.BulkUpdateResult{Matched: int64(len(models))}

	actions := repo.coll.Actions()
	for _, orderM := range models {
		mods := docstore.Mods{}
		for field, value := range fields {
			if orderM.ContactValue(field) != value {
				mods[docstore.FieldPath(field)] = value
			}
		}
		if len(mods) == 0 {
			continue
		}

		actions.Update(&model.OrderModel{OrderID: orderM.OrderID}, mods)
		result.Modified++
	}

	if result.Modified == 0 {
		return result, nil
	}

	if err := actions.Do(ctx); err != nil {
		return repository.BulkUpdateResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to synchronize orders")
	}

	return result, nil
}
