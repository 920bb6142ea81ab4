package main

import (
	"context"
	"log/slog"
	"os"

	"usersync/config"
	"usersync/internal/delivery"
	"usersync/internal/delivery/http"
	"usersync/internal/delivery/http/handler"
	"usersync/internal/domain/constants"
	logs "usersync/internal/infra/log"
	"usersync/internal/infra/persistence"
	"usersync/internal/infra/pubsub"
	"usersync/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		persistence.UserModule,
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		newConfig,
		logs.New,
		context.Background,
	)
}

func newConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	cfg.Env.ServiceName = constants.ComponentUserV2

	return cfg, nil
}

func injectService() fx.Option {
	return pubsub.PublisherModule
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserServiceV2,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			http.AsRoutes(handler.NewUserHandler),
			http.AsRoutes(func() *handler.HealthHandler {
				return handler.NewHealthHandler(constants.ComponentUserV2)
			}),
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
