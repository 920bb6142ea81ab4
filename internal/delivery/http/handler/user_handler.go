// Package handler contains the HTTP handlers for the services.
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

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the user endpoints of either service version
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterRoutes adds the /user endpoints
func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/user", h.CreateUser)
	e.GET("/user/:id", h.GetUser)
	e.PUT("/user/:id", h.UpdateUser)
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,min=5"`
}

// UpdateUserRequest represents a partial user update; absent fields stay untouched
type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,min=5"`
}

// CreateUserResponse echoes the stored user
type CreateUserResponse struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
}

// SyncResult reports the synchronous order sync performed by the legacy service
type SyncResult struct {
	Attempted      bool   `json:"attempted"`
	Synced         bool   `json:"synced"`
	MatchedOrders  int64  `json:"matched_orders"`
	ModifiedOrders int64  `json:"modified_orders"`
	Error          string `json:"error,omitempty"`
}

// UpdateUserResponse is the body of a successful user update. SyncResult is
// set by the legacy service, EventPublished by the event-driven one.
type UpdateUserResponse struct {
	Message        string            `json:"message"`
	UpdatedFields  map[string]string `json:"updated_fields"`
	SyncResult     *SyncResult       `json:"sync_result,omitempty"`
	EventPublished *bool             `json:"event_published,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// CreateUser upserts a full user
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), &entity.User{
		UserID:  req.UserID,
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, CreateUserResponse{
		Message: "User created/updated",
		User:    user,
	})
}

// GetUser returns the stored user or 404
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUC.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, user)
}

// UpdateUser merges the supplied fields. A failed propagation still answers
// 2xx: the user write is kept and the response carries the failure.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid user update input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.userUC.UpdateUser(c.Request().Context(), c.Param("id"), entity.UserPatch{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	status, body := updateUserResponse(result)

	return response.JSON(c, status, body)
}

func updateUserResponse(result *usecase.UserUpdateResult) (int, UpdateUserResponse) {
	p := result.Propagation
	body := UpdateUserResponse{
		Message:       "User updated",
		UpdatedFields: result.UpdatedFields,
	}

	var errMsg string
	if p.Err != nil {
		errMsg = p.Err.Error()
	}

	switch p.Strategy {
	case usecase.StrategyOrderSync:
		body.SyncResult = &SyncResult{
			Attempted:      p.Attempted,
			Synced:         p.Succeeded,
			MatchedOrders:  p.MatchedOrders,
			ModifiedOrders: p.ModifiedOrders,
			Error:          errMsg,
		}
		if p.Failed() {
			body.Message = "User updated but order sync failed"
		}
	case usecase.StrategyChangeEvent:
		published := p.Succeeded
		body.EventPublished = &published
		body.Error = errMsg
		if p.Failed() {
			body.Message = "User updated but event failed"
		}
	}

	if p.Failed() {
		return http.StatusAccepted, body
	}

	return http.StatusOK, body
}
