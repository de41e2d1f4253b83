package middleware

import (
	"net/http"
	"time"

	"github.com/grachmannico95/pix-relay/pkg/logger"
	"github.com/labstack/echo/v4"
)

// quietRoutes are hit by health checks and scrapers; they log at debug.
var quietRoutes = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Logging writes one line per request. Handler errors are committed here so
// the logged status is the one the client receives.
func Logging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []interface{}{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", status,
				"bytes_out", c.Response().Size,
				"duration_ms", time.Since(start).Milliseconds(),
				"client_ip", c.RealIP(),
			}

			ctx := req.Context()
			switch {
			case status >= http.StatusInternalServerError:
				log.Error(ctx, "HTTP request", fields...)
			case status >= http.StatusBadRequest:
				log.Warn(ctx, "HTTP request", fields...)
			case quietRoutes[c.Path()]:
				log.Debug(ctx, "HTTP request", fields...)
			default:
				log.Info(ctx, "HTTP request", fields...)
			}

			return nil
		}
	}
}
