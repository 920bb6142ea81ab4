package impl

import (
	"io"
	"log/slog"

	"usersync/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(trailSize int) *config.Config {
	return &config.Config{
		Consumer: &config.ConsumerConfig{
			TrailSize: trailSize,
		},
	}
}

func strPtr(s string) *string {
	return &s
}
