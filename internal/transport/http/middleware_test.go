package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_LogsStatusAndPath(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(RequestLogger(logger))
	e.POST("/zones", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	do(e, http.MethodPost, "/zones", "", "")

	out := buf.String()
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "path=/zones")
	assert.Contains(t, out, "status=201")
}

func TestRequestLogger_LogsRenderedErrorStatus(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(RequestLogger(logger))

	rec := do(e, http.MethodGet, "/missing", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status=404")
}

func TestRequireAdmin_NilCheckDenies(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireActor(), RequireAdmin(nil))

	rec := do(e, http.MethodGet, "/admin", "Tocard", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
