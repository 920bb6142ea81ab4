package response

import (
	"net/http"

	domainerrors "usersync/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// JSON writes a plain JSON body
func JSON(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}

// Message is the minimal acknowledgement body
type Message struct {
	Message string `json:"message"`
}

// Error writes the error envelope
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, domainerrors.Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &domainerrors.ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// AppError writes an AppError in the error envelope
func AppError(c echo.Context, err domainerrors.AppError) error {
	return Error(c, err.HTTPCode(), err.ErrorCode(), err.Message(), err.Details())
}

// BindingError 400 error for bodies that cannot be decoded
func BindingError(c echo.Context, details string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", details)
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
