// Package middleware provides the request-id middleware used for tracing
// requests through log output.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"kb-assessor/utils/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware extracts or generates a request id, propagates it via
// the request context and echoes it back in the response headers.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestID := req.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := logger.WithRequestID(req.Context(), requestID)
			c.SetRequest(req.WithContext(ctx))

			c.Response().Header().Set(requestIDHeader, requestID)

			return next(c)
		}
	}
}
