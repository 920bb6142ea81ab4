package memdoc

import (
	"context"

	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	"usersync/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gocloud.dev/docstore"
)

type userRepository struct {
	coll *docstore.Collection
}

// NewUserRepository opens the users collection described by the store configuration.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	coll, err := openManaged(params.Lifecycle, params.Logger, model.FieldUserID, params.Config.Store.Users)
	if err != nil {
		return nil, err
	}

	return NewUserRepositoryFromCollection(coll), nil
}

// NewUserRepositoryFromCollection wraps an already opened collection keyed by user_id.
func NewUserRepositoryFromCollection(coll *docstore.Collection) repository.UserRepository {
	return &userRepository{coll: coll}
}

func (repo *userRepository) UpsertUser(ctx context.Context, user *entity.User) error {
	if err := repo.coll.Put(ctx, model.FromDomainUser(user)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert user")
	}

	return nil
}

func (repo *userRepository) FindUserByID(ctx context.Context, userID string) (*entity.User, error) {
	userM := &model.UserModel{UserID: userID}
	if err := repo.coll.Get(ctx, userM); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userM.ToDomain(), nil
}

func (repo *userRepository) UpdateUserFields(ctx context.Context, userID string, fields map[string]string) error {
	mods := make(docstore.Mods, len(fields))
	for k, v := range fields {
		mods[docstore.FieldPath(k)] = v
	}

	if err := repo.coll.Update(ctx, &model.UserModel{UserID: userID}, mods); err != nil {
		if isNotFound(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return nil
}
