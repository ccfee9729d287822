package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/TBanda27/Ecommerce-bookstore/pkg/tokens"
)

// Identity headers injected by the gateway. The auth service trusts them
// because the gateway is the only way in from outside the private network.
const (
	headerUserName  = "X-User-Name"
	headerUserRoles = "X-User-Roles"
)

const ctxUsername = "username"

// RequireIdentity admits only requests carrying a gateway-injected identity.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.Request().Header.Get(headerUserName)
		if username == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		c.Set(ctxUsername, username)
		return next(c)
	}
}

// RequireAdmin additionally demands the ADMIN role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireIdentity(func(c echo.Context) error {
		roles := strings.Split(c.Request().Header.Get(headerUserRoles), ",")
		for _, r := range roles {
			if tokens.NormalizeRole(strings.TrimSpace(r)) == "ROLE_ADMIN" {
				return next(c)
			}
		}
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	})
}
