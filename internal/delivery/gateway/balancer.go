package gateway

import (
	"log/slog"
	"math/rand/v2"

	"usersync/internal/delivery/middleware"
	"usersync/internal/domain/service"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// StranglerBalancer splits user traffic between the legacy and the modern
// user service. Every pick draws u in [0,1) and routes to legacy when u < P,
// with P read from the probability source at that moment.
type StranglerBalancer struct {
	legacy *echomiddleware.ProxyTarget
	modern *echomiddleware.ProxyTarget
	source service.ProbabilitySource
	draw   func() float64
	logger *slog.Logger
}

// NewStranglerBalancer creates a balancer drawing from math/rand/v2.
func NewStranglerBalancer(legacy, modern *echomiddleware.ProxyTarget, source service.ProbabilitySource, logger *slog.Logger) *StranglerBalancer {
	return &StranglerBalancer{
		legacy: legacy,
		modern: modern,
		source: source,
		draw:   rand.Float64,
		logger: logger,
	}
}

// WithDraw replaces the random draw; draw must return values in [0,1).
func (b *StranglerBalancer) WithDraw(draw func() float64) *StranglerBalancer {
	b.draw = draw

	return b
}

// Pick returns the target for a single decision.
func (b *StranglerBalancer) Pick() *echomiddleware.ProxyTarget {
	p := b.source.Probability()
	if b.draw() < p {
		return b.legacy
	}

	return b.modern
}

// AddTarget is a no-op, the two targets are fixed.
func (b *StranglerBalancer) AddTarget(*echomiddleware.ProxyTarget) bool {
	return false
}

// RemoveTarget is a no-op, the two targets are fixed.
func (b *StranglerBalancer) RemoveTarget(string) bool {
	return false
}

// Next implements echo's ProxyBalancer.
func (b *StranglerBalancer) Next(c echo.Context) *echomiddleware.ProxyTarget {
	return announce(c, b.Pick())
}

// fixedBalancer always forwards to one upstream.
type fixedBalancer struct {
	target *echomiddleware.ProxyTarget
}

func (b *fixedBalancer) AddTarget(*echomiddleware.ProxyTarget) bool {
	return false
}

func (b *fixedBalancer) RemoveTarget(string) bool {
	return false
}

func (b *fixedBalancer) Next(c echo.Context) *echomiddleware.ProxyTarget {
	return announce(c, b.target)
}

func announce(c echo.Context, target *echomiddleware.ProxyTarget) *echomiddleware.ProxyTarget {
	c.Response().Header().Set(middleware.HeaderUpstreamTarget, target.Name)

	return target
}
