package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/policy"
	"github.com/Skotchmaster/shop_orders/pkg/tokens"
)

var secret = []byte("test-jwt-secret")

func newToken(t *testing.T, id uint, role string, exp time.Duration) string {
	t.Helper()
	tok, err := tokens.NewAccessToken(id, role, "u@example.com", time.Now().Add(exp), secret)
	require.NoError(t, err)
	return tok
}

func run(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, policy.Principal, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got policy.Principal
	h := NewAuthenticator(secret).RequireAuth(func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		got = p
		return c.NoContent(http.StatusOK)
	})
	return rec, got, h(c)
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+newToken(t, 5, "ADMIN", time.Minute))

	rec, p, err := run(t, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), p.ID)
	assert.Equal(t, models.RoleAdmin, p.Role)
	assert.Equal(t, "u@example.com", p.Email)
}

func TestRequireAuth_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: newToken(t, 9, "USER", time.Minute)})

	_, p, err := run(t, req)
	require.NoError(t, err)
	assert.Equal(t, uint(9), p.ID)
	assert.Equal(t, models.RoleUser, p.Role)
}

func TestRequireAuth_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage", header: "Bearer nope"},
		{name: "expired", header: "Bearer " + newToken(t, 1, "USER", -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			e := echo.New()
			c := e.NewContext(req, httptest.NewRecorder())
			called := false
			err := NewAuthenticator(secret).RequireAuth(func(c echo.Context) error {
				called = true
				return nil
			})(c)

			require.Error(t, err)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
			assert.False(t, called)
		})
	}
}

func TestPrincipalFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := PrincipalFrom(c)
	assert.False(t, ok)
}
