// Package mongodb contains the MongoDB implementation of the document repositories.
package mongodb

import (
	"context"
	"log/slog"

	"usersync/config"
	"usersync/internal/domain/lifecycle"
	"usersync/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// openCollection creates a client for one collection. The connection is verified
// and the indexes are ensured when the application starts.
func openCollection(lc fx.Lifecycle, cfg config.CollectionConfig, logger *slog.Logger, indexes []mongo.IndexModel) (*mongo.Collection, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrapf(err, "failed to ping MongoDB %s", cfg.Mongo.Database)
			}

			if len(indexes) > 0 {
				if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
					return errors.Wrapf(err, "failed to ensure indexes on %s", cfg.Mongo.Collection)
				}
			}

			logger.Info("MongoDB collection ready",
				slog.String("database", cfg.Mongo.Database),
				slog.String("collection", cfg.Mongo.Collection),
			)

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			return client.Disconnect(stopCtx)
		},
	})

	return coll, nil
}

// setDocument builds a $set update from the given fields.
func setDocument(fields map[string]any) bson.M {
	set := make(bson.M, len(fields))
	for k, v := range fields {
		set[k] = v
	}

	return bson.M{"$set": set}
}
