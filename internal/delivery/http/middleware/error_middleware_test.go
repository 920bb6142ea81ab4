package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "usersync/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, domainerrors.Response) {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/user/u1", nil), rec)

	m.HandleHTTPError(err, c)

	var body domainerrors.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec.Code, body
}

func TestHandleHTTPError_AppError(t *testing.T) {
	code, body := handle(t, errors.Wrap(domainerrors.ErrUserNotFound, "lookup"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, body.Success)
	assert.Equal(t, "USER_NOT_FOUND", body.Error.Code)
}

func TestHandleHTTPError_ValidationDetails(t *testing.T) {
	code, body := handle(t, domainerrors.ErrValidation.WithDetails("email must be a valid email address"))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email must be a valid email address", body.Error.Details)
}

func TestHandleHTTPError_EchoError(t *testing.T) {
	code, body := handle(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
}

func TestHandleHTTPError_Unknown(t *testing.T) {
	code, body := handle(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Details, "boom")
}
