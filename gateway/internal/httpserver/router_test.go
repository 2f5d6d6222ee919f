package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.Header().Set("X-Seen-Host", r.Header.Get("X-Forwarded-Host"))
		_, _ = io.WriteString(w, r.Method+" "+r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegister_RoutesToUpstreams(t *testing.T) {
	catalog := upstream(t, "catalog")
	order := upstream(t, "order")

	e := echo.New()
	require.NoError(t, Register(e, &Deps{CatalogURL: catalog.URL, OrderURL: order.URL}))

	tests := []struct {
		method, path, upstream string
	}{
		{http.MethodGet, "/api/v1/catalog/products", "catalog"},
		{http.MethodPatch, "/api/v1/catalog/products/3", "catalog"},
		{http.MethodPost, "/api/v1/orders", "order"},
		{http.MethodGet, "/api/v1/orders/all", "order"},
		{http.MethodDelete, "/api/v1/orders/7", "order"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Host = "shop.local"
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.upstream, rec.Header().Get("X-Upstream"))
			assert.Equal(t, "shop.local", rec.Header().Get("X-Seen-Host"))
			assert.Equal(t, tt.method+" "+tt.path, rec.Body.String())
		})
	}
}

func TestRegister_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	e := echo.New()
	require.NoError(t, Register(e, &Deps{CatalogURL: deadURL, OrderURL: deadURL}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"message":"upstream unavailable"}`, rec.Body.String())
}

func TestRegister_BadURL(t *testing.T) {
	e := echo.New()
	assert.Error(t, Register(e, &Deps{CatalogURL: "not a url", OrderURL: "http://localhost:1"}))
}
