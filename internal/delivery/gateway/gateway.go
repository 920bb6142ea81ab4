// Package gateway implements the API gateway that fronts the user and order services.
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"usersync/config"
	deliverycontext "usersync/internal/delivery/context"
	"usersync/internal/delivery/http/handler"
	"usersync/internal/delivery/middleware"
	"usersync/internal/domain/constants"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/service"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Upstream target names reported in the X-Upstream-Target header.
const (
	TargetUserV1 = "user_v1"
	TargetUserV2 = "user_v2"
	TargetOrder  = "order_service"
)

// statusClientClosed is what echo's proxy reports when the caller went away.
const statusClientClosed = 499

// Params holds dependencies for Gateway, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Source service.ProbabilitySource
	Logger *slog.Logger
}

// Gateway registers the forwarding routes
type Gateway struct {
	users   *StranglerBalancer
	orders  *fixedBalancer
	timeout time.Duration
	health  *handler.HealthHandler
	logger  *slog.Logger
}

// New creates a gateway from the configured upstream URLs.
func New(params Params) (*Gateway, error) {
	cfg := params.Config.Gateway

	v1, err := newTarget(TargetUserV1, cfg.UserV1URL)
	if err != nil {
		return nil, err
	}
	v2, err := newTarget(TargetUserV2, cfg.UserV2URL)
	if err != nil {
		return nil, err
	}
	order, err := newTarget(TargetOrder, cfg.OrderURL)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Gateway upstreams configured",
		slog.String(TargetUserV1, v1.URL.String()),
		slog.String(TargetUserV2, v2.URL.String()),
		slog.String(TargetOrder, order.URL.String()),
		slog.String("routing_config", cfg.RoutingConfigPath),
	)

	return &Gateway{
		users:   NewStranglerBalancer(v1, v2, params.Source, params.Logger),
		orders:  &fixedBalancer{target: order},
		timeout: cfg.UpstreamTimeout,
		health:  handler.NewHealthHandler(constants.ComponentGateway),
		logger:  params.Logger,
	}, nil
}

// Users exposes the user balancer so callers can replace its random draw.
func (g *Gateway) Users() *StranglerBalancer {
	return g.users
}

// RegisterRoutes adds the health endpoint and the forwarding routes
func (g *Gateway) RegisterRoutes(e *echo.Echo) {
	g.health.RegisterRoutes(e)

	userProxy := g.proxy(g.users)
	e.POST("/user", forward, userProxy...)
	e.GET("/user/*", forward, userProxy...)
	e.PUT("/user/*", forward, userProxy...)

	orderProxy := g.proxy(g.orders)
	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut}
	for _, path := range []string{"/order", "/order/*", "/orders", "/orders/*"} {
		e.Match(methods, path, forward, orderProxy...)
	}
}

func (g *Gateway) proxy(balancer echomiddleware.ProxyBalancer) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: g.timeout,
		}),
		upstreamHost,
		echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
			Balancer:     balancer,
			ErrorHandler: g.unreachable,
		}),
	}
}

// unreachable turns a failed forward into a 502. There is no retry.
func (g *Gateway) unreachable(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == statusClientClosed {
		return err
	}

	details := err.Error()
	if httpErr != nil {
		details = fmt.Sprint(httpErr.Message)
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), g.logger).Warn("Upstream unreachable",
		slog.String("path", c.Request().URL.Path),
		slog.String("upstream", c.Response().Header().Get(middleware.HeaderUpstreamTarget)),
		slog.String("details", details),
	)

	return domainerrors.ErrUpstreamUnreachable.WithDetails(details)
}

// upstreamHost drops the inbound Host so the outbound request carries the upstream's.
func upstreamHost(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Request().Host = ""

		return next(c)
	}
}

// forward is only reached when the proxy skips a request.
func forward(_ echo.Context) error {
	return echo.ErrNotFound
}

func newTarget(name, rawURL string) (*echomiddleware.ProxyTarget, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s upstream url", name)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid %s upstream url: %q", name, rawURL)
	}

	return &echomiddleware.ProxyTarget{Name: name, URL: u}, nil
}
