package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
	"lifeline/internal/delivery/http/response"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/errors"
)

// ErrorMiddleware renders every error escaping a handler as the unified
// response envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// ErrorMiddlewareParams defines the dependencies for ErrorMiddleware.
type ErrorMiddlewareParams struct {
	fx.In

	Logger *slog.Logger
}

// NewErrorMiddleware creates a new error middleware instance.
func NewErrorMiddleware(params ErrorMiddlewareParams) *ErrorMiddleware {
	return &ErrorMiddleware{logger: params.Logger}
}

// HandleHTTPError is installed as Echo's HTTPErrorHandler. Application
// errors keep their taxonomy codes, everything else becomes a 500 with the
// cause logged but not exposed.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("errorCode", appErr.ErrorCode()),
				slog.Any("error", err),
			)
		}

		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	logger.Error("unhandled error", slog.Any("error", err))

	_ = response.Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}
