package handler

import (
	"log/slog"
	"net/http"

	"usersync/internal/delivery/http/response"
	"usersync/internal/domain/entity"
	"usersync/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves the order service endpoints
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// RegisterRoutes adds the order and sync endpoints
func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/order", h.CreateOrder)
	e.GET("/order/:id", h.GetOrder)
	e.PUT("/order/:id", h.UpdateOrder)
	e.GET("/orders/:status", h.ListOrdersByStatus)
	e.PUT("/sync_user/:id", h.SyncUser)
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Items   []any  `json:"items" validate:"required"`
	Status  string `json:"status" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,min=5"`
}

// UpdateOrderRequest represents a partial order update
type UpdateOrderRequest struct {
	Items   *[]any  `json:"items"`
	Status  *string `json:"status"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,min=5"`
}

// OrderResponse wraps a stored order
type OrderResponse struct {
	Message string        `json:"message"`
	Order   *entity.Order `json:"order"`
}

// OrdersResponse lists orders
type OrdersResponse struct {
	Orders []*entity.Order `json:"orders"`
}

// UpdateOrderResponse echoes the fields that were set
type UpdateOrderResponse struct {
	Message       string         `json:"message"`
	UpdatedFields map[string]any `json:"updated_fields"`
}

// SyncUserResponse reports a contact fan-out
type SyncUserResponse struct {
	Message        string               `json:"message"`
	UpdatedFields  entity.ContactFields `json:"updated_fields"`
	MatchedOrders  int64                `json:"matched_orders"`
	ModifiedOrders int64                `json:"modified_orders"`
}

// CreateOrder upserts a full order
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), &entity.Order{
		OrderID: req.OrderID,
		UserID:  req.UserID,
		Items:   req.Items,
		Status:  req.Status,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, OrderResponse{
		Message: "Order created/updated",
		Order:   order,
	})
}

// GetOrder returns one order or 404
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUC.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, order)
}

// ListOrdersByStatus returns every order with the given status
func (h *OrderHandler) ListOrdersByStatus(c echo.Context) error {
	orders, err := h.orderUC.ListOrdersByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, OrdersResponse{Orders: orders})
}

// UpdateOrder sets the supplied fields on an existing order
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid order update input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fields, err := h.orderUC.UpdateOrder(c.Request().Context(), c.Param("id"), entity.OrderPatch{
		Items:   req.Items,
		Status:  req.Status,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, UpdateOrderResponse{
		Message:       "Order updated",
		UpdatedFields: fields,
	})
}

// SyncUser overwrites email/address on all orders of the user. Keys other
// than email and address are ignored.
func (h *OrderHandler) SyncUser(c echo.Context) error {
	var update map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &update); err != nil {
		return response.BindingError(c, "Invalid sync input")
	}

	result, err := h.orderUC.SyncUser(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, SyncUserResponse{
		Message:        "User info synchronized across orders",
		UpdatedFields:  result.UpdatedFields,
		MatchedOrders:  result.Orders.Matched,
		ModifiedOrders: result.Orders.Modified,
	})
}
