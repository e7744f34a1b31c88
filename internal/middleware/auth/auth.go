package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NagbhushanPai/Incubyte-Project/internal/authz"
	"github.com/NagbhushanPai/Incubyte-Project/internal/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// Require verifies the bearer token and checks the permission table for op
// before the handler runs. Missing or invalid tokens are rejected with 401
// before any operation-specific logic; a valid identity without the right
// role gets 403 regardless of whether the target exists.
func (m *Middleware) Require(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := m.claimsFromRequest(c)
			if err != nil {
				return err
			}

			if !authz.Allowed(authz.Role(claims.Role), op) {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}

func (m *Middleware) claimsFromRequest(c echo.Context) (*tokens.AccessClaims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
	if err != nil || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("role", claims.Role)
}
