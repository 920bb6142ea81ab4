package handler

import (
	"net/http"

	"usersync/internal/delivery/http/response"
	"usersync/internal/domain/constants"
	"usersync/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ConsumerStatus reports how many consumer instances are attached to the queue
type ConsumerStatus interface {
	ActiveConsumers() int
}

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	Applier usecase.ChangeEventUsecase
	Status  ConsumerStatus
}

// EventHandler serves the sync worker's health and diagnostics endpoints
type EventHandler struct {
	applier usecase.ChangeEventUsecase
	status  ConsumerStatus
}

// NewEventHandler is the constructor for EventHandler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		applier: params.Applier,
		status:  params.Status,
	}
}

// WorkerHealthResponse adds the number of attached consumers to the health body
type WorkerHealthResponse struct {
	HealthResponse
	Consumers int `json:"consumers"`
}

// LastEventsResponse lists the most recently handled change events
type LastEventsResponse struct {
	Events []usecase.ChangeOutcome `json:"events"`
}

// RegisterRoutes adds GET /health and GET /last-events
func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/last-events", h.LastEvents)
}

// Health reports liveness even when no consumer is connected
func (h *EventHandler) Health(c echo.Context) error {
	return response.JSON(c, http.StatusOK, WorkerHealthResponse{
		HealthResponse: HealthResponse{Status: "ok", Component: constants.ComponentConsumer},
		Consumers:      h.status.ActiveConsumers(),
	})
}

// LastEvents returns the event trail, oldest first
func (h *EventHandler) LastEvents(c echo.Context) error {
	return response.JSON(c, http.StatusOK, LastEventsResponse{Events: h.applier.RecentEvents()})
}
