// Package routecfg reads the gateway's legacy traffic fraction from a file.
package routecfg

import (
	"log/slog"
	"strconv"
	"strings"

	"usersync/config"
	"usersync/internal/domain/service"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const keyP = "P"

type fileSource struct {
	path     string
	fallback float64
	logger   *slog.Logger
}

// NewFileSource creates a ProbabilitySource reading the configured routing file
func NewFileSource(cfg *config.Config, logger *slog.Logger) service.ProbabilitySource {
	return NewFileSourceAt(cfg.Gateway.RoutingConfigPath, logger)
}

// NewFileSourceAt creates a ProbabilitySource for path. The file holds JSON or
// YAML with a top-level P.
func NewFileSourceAt(path string, logger *slog.Logger) service.ProbabilitySource {
	return &fileSource{
		path:     path,
		fallback: config.DefaultRoutingP,
		logger:   logger,
	}
}

// Probability re-reads the file; any problem yields the fallback.
func (s *fileSource) Probability() float64 {
	k := koanf.New(".")
	// The YAML parser also accepts JSON documents.
	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		s.logger.Debug("Routing config unreadable, using default",
			slog.String("path", s.path),
			slog.Any("error", err),
		)

		return s.fallback
	}

	p, ok := toFloat(k.Get(keyP))
	// Written so that NaN fails the range check too.
	if !ok || !(p >= 0 && p <= 1) {
		s.logger.Warn("Routing config has no valid P, using default",
			slog.String("path", s.path),
			slog.Any("value", k.Get(keyP)),
		)

		return s.fallback
	}

	return p
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)

		return f, err == nil
	default:
		return 0, false
	}
}
