package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/policy"
	"github.com/Skotchmaster/shop_orders/pkg/tokens"
)

const (
	CtxPrincipal = "principal"

	accessCookie = "accessToken"
)

type Authenticator struct {
	JWTSecret []byte
}

func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{JWTSecret: secret}
}

// RequireAuth verifies the access token once per request and stores the
// resulting policy.Principal on the echo context.
func (m *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
		}

		c.Set(CtxPrincipal, policy.Principal{
			ID:    userID,
			Role:  models.Role(claims.Role),
			Email: claims.Email,
		})
		return next(c)
	}
}

func PrincipalFrom(c echo.Context) (policy.Principal, bool) {
	p, ok := c.Get(CtxPrincipal).(policy.Principal)
	if !ok || p.ID == 0 {
		return policy.Principal{}, false
	}
	return p, true
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if ck, err := c.Cookie(accessCookie); err == nil {
		return ck.Value
	}
	return ""
}
