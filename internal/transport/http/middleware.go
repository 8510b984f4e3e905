package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	HeaderActor = "X-Actor"
	actorKey    = "actor"
)

// RequestLogger logs basic request details and latency.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Render now so the logged status is the one the client sees.
				c.Error(err)
			}

			logger.Info("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return nil
		}
	}
}

// RequireActor rejects requests without an X-Actor header and stores the actor
// for handlers.
func RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := strings.TrimSpace(c.Request().Header.Get(HeaderActor))
			if actor == "" {
				return writeError(c, http.StatusBadRequest, codeActorRequired, HeaderActor+" header is required")
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireAdmin lets through only actors accepted by isAdmin. It must run after RequireActor.
func RequireAdmin(isAdmin func(actor string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isAdmin == nil || !isAdmin(actorFrom(c)) {
				return writeError(c, http.StatusForbidden, codeForbidden, "admin rights required")
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) string {
	actor, _ := c.Get(actorKey).(string)
	return actor
}
