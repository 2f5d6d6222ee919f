package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/shop_orders/pkg/middleware/auth"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAuthenticator(d.JWTSecret)

	products := e.Group("/api/v1/catalog/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	owned := products.Group("", authMW.RequireAuth)
	owned.POST("", d.CatalogHandler.CreateProduct)
	owned.PATCH("/:id", d.CatalogHandler.PatchProduct)
	owned.DELETE("/:id", d.CatalogHandler.DeleteProduct)
}
