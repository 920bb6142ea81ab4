// Package memdoc implements the document repositories on gocloud docstore,
// backed by the in-memory driver with optional file persistence.
package memdoc

import (
	"context"
	"log/slog"

	"usersync/config"
	"usersync/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/docstore"
	"gocloud.dev/docstore/memdocstore"
	"gocloud.dev/gcerrors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// OpenCollection opens an in-memory collection keyed by keyField. When filename
// is set the documents are loaded from it and written back on Close.
func OpenCollection(keyField, filename string) (*docstore.Collection, error) {
	coll, err := memdocstore.OpenCollection(keyField, &memdocstore.Options{
		Filename: filename,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open docstore collection keyed by %s", keyField)
	}

	return coll, nil
}

func openManaged(lc fx.Lifecycle, logger *slog.Logger, keyField string, cfg config.CollectionConfig) (*docstore.Collection, error) {
	coll, err := OpenCollection(keyField, cfg.DocstoreFile)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing docstore collection", slog.String("key", keyField))

			return coll.Close()
		},
	})

	return coll, nil
}

func isNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}
