package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogURL string
	OrderURL   string
}

// Register mounts the public API. Upstream services keep the /api/v1 prefix
// and authenticate requests themselves.
func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	catalogProxy, err := newProxy("catalog", d.CatalogURL)
	if err != nil {
		return err
	}
	orderProxy, err := newProxy("order", d.OrderURL)
	if err != nil {
		return err
	}

	api := e.Group("/api/v1")
	api.Any("/catalog/*", catalogProxy)
	api.Any("/orders", orderProxy)
	api.Any("/orders/*", orderProxy)

	return nil
}
