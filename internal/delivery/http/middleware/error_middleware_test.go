package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/errors"
)

func newErrorContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestHandleHTTPError_AppError(t *testing.T) {
	mw := NewErrorMiddleware(ErrorMiddlewareParams{Logger: slog.Default()})
	c, rec := newErrorContext(t)

	mw.HandleHTTPError(domainerrors.ErrProfileNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROFILE_NOT_FOUND")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHandleHTTPError_WrappedAppErrorKeepsCode(t *testing.T) {
	mw := NewErrorMiddleware(ErrorMiddlewareParams{Logger: slog.Default()})
	c, rec := newErrorContext(t)

	err := errors.WithStack(domainerrors.WrapMessage(domainerrors.ErrRequiresRecentLogin, "change password"))
	mw.HandleHTTPError(err, c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "REQUIRES_RECENT_LOGIN")
}

func TestHandleHTTPError_UnknownErrorIsInternal(t *testing.T) {
	mw := NewErrorMiddleware(ErrorMiddlewareParams{Logger: slog.Default()})
	c, rec := newErrorContext(t)

	mw.HandleHTTPError(errors.New("connection reset"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL")
	// The cause never leaks into the response body.
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	mw := NewErrorMiddleware(ErrorMiddlewareParams{Logger: slog.Default()})
	c, rec := newErrorContext(t)

	mw.HandleHTTPError(echo.NewHTTPError(http.StatusNotFound, "route not found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "route not found")
}
