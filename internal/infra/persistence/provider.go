// Package persistence selects the document store driver for the repositories.
package persistence

import (
	"usersync/internal/domain/constants"
	"usersync/internal/domain/repository"
	"usersync/internal/infra/persistence/memdoc"
	"usersync/internal/infra/persistence/mongodb"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NewUserRepository builds the user repository for the configured driver
func NewUserRepository(mongoParams mongodb.Params, memParams memdoc.Params) (repository.UserRepository, error) {
	switch driver := mongoParams.Config.Store.Driver; driver {
	case constants.StoreDriverMongo:
		return mongodb.NewUserRepository(mongoParams)
	case constants.StoreDriverDocstore:
		return memdoc.NewUserRepository(memParams)
	default:
		return nil, errors.Errorf("unknown store driver: %s", driver)
	}
}

// NewOrderRepository builds the order repository for the configured driver
func NewOrderRepository(mongoParams mongodb.Params, memParams memdoc.Params) (repository.OrderRepository, error) {
	switch driver := mongoParams.Config.Store.Driver; driver {
	case constants.StoreDriverMongo:
		return mongodb.NewOrderRepository(mongoParams)
	case constants.StoreDriverDocstore:
		return memdoc.NewOrderRepository(memParams)
	default:
		return nil, errors.Errorf("unknown store driver: %s", driver)
	}
}

// UserModule provides the user repository
//
//nolint:gochecknoglobals
var UserModule = fx.Options(
	fx.Provide(NewUserRepository),
)

// OrderModule provides the order repository
//
//nolint:gochecknoglobals
var OrderModule = fx.Options(
	fx.Provide(NewOrderRepository),
)
