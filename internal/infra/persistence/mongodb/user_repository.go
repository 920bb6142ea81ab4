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

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository connects to the configured users collection.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	coll, err := openCollection(params.Lifecycle, params.Config.Store.Users, params.Logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: model.FieldUserID, Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return nil, err
	}

	return &userRepository{coll: coll}, nil
}

// UpsertUser replaces the whole document keyed by user_id, inserting it when absent.
func (repo *userRepository) UpsertUser(ctx context.Context, user *entity.User) error {
	_, err := repo.coll.ReplaceOne(ctx,
		bson.M{model.FieldUserID: user.UserID},
		model.FromDomainUser(user),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert user")
	}

	return nil
}

func (repo *userRepository) FindUserByID(ctx context.Context, userID string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.coll.FindOne(ctx, bson.M{model.FieldUserID: userID}).Decode(&userM)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userM.ToDomain(), nil
}

func (repo *userRepository) UpdateUserFields(ctx context.Context, userID string, fields map[string]string) error {
	set := make(map[string]any, len(fields))
	for k, v := range fields {
		set[k] = v
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{model.FieldUserID: userID}, setDocument(set))
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if res.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
