package mongodb

import (
	"context"

	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	"usersync/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository connects to the configured orders collection.
func NewOrderRepository(params Params) (repository.OrderRepository, error) {
	coll, err := openCollection(params.Lifecycle, params.Config.Store.Orders, params.Logger, orderIndexes())
	if err != nil {
		return nil, err
	}

	return &orderRepository{coll: coll}, nil
}

// orderIndexes: order_id is the key, user_id+status serves the sync fan-out
// (by prefix) and per-user status lookups, status serves the listing.
func orderIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: model.FieldOrderID, Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: model.FieldUserID, Value: 1}, {Key: model.FieldStatus, Value: 1}},
		},
		{
			Keys: bson.D{{Key: model.FieldStatus, Value: 1}},
		},
	}
}

func (repo *orderRepository) UpsertOrder(ctx context.Context, order *entity.Order) error {
	_, err := repo.coll.ReplaceOne(ctx,
		bson.M{model.FieldOrderID: order.OrderID},
		model.FromDomainOrder(order),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert order")
	}

	return nil
}

func (repo *orderRepository) FindOrderByID(ctx context.Context, orderID string) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.coll.FindOne(ctx, bson.M{model.FieldOrderID: orderID}).Decode(&orderM)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return orderM.ToDomain(), nil
}

func (repo *orderRepository) FindOrdersByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	return repo.find(ctx, bson.M{model.FieldStatus: status})
}

func (repo *orderRepository) FindOrdersByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return repo.find(ctx, bson.M{model.FieldUserID: userID})
}

func (repo *orderRepository) find(ctx context.Context, filter bson.M) ([]*entity.Order, error) {
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query orders")
	}

	var models []model.OrderModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, errors.Wrap(err, "failed to decode orders")
	}

	orders := make([]*entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, models[i].ToDomain())
	}

	return orders, nil
}

func (repo *orderRepository) UpdateOrderFields(ctx context.Context, orderID string, fields map[string]any) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{model.FieldOrderID: orderID}, setDocument(fields))
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update order")
	}
	if res.MatchedCount == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// SetContactFieldsByUser issues one multi-document $set over the user's orders.
func (repo *orderRepository) SetContactFieldsByUser(ctx context.Context, userID string, fields entity.ContactFields) (repository.BulkUpdateResult, error) {
	res, err := repo.coll.UpdateMany(ctx, bson.M{model.FieldUserID: userID}, setDocument(fields.AsAny()))
	if err != nil {
		return repository.BulkUpdateResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to synchronize orders")
	}

	return repository.BulkUpdateResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}, nil
}
