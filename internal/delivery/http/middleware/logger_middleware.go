package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	deliverycontext "lifeline/internal/delivery/context"
)

// LoggerMiddleware injects a request identifier and a request-scoped logger
// into the request context so lower layers can correlate log lines.
type LoggerMiddleware struct {
	logger *slog.Logger
}

// LoggerMiddlewareParams defines the dependencies for LoggerMiddleware.
type LoggerMiddlewareParams struct {
	fx.In

	Logger *slog.Logger
}

// NewLoggerMiddleware creates a new logger middleware instance.
func NewLoggerMiddleware(params LoggerMiddlewareParams) *LoggerMiddleware {
	return &LoggerMiddleware{logger: params.Logger}
}

// Inject reuses an inbound X-Request-Id when present so identifiers stay
// stable across service hops.
func (m *LoggerMiddleware) Inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scoped := m.logger.With(slog.String("requestId", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, scoped)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
