package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/match"
	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/policy"
	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/proxy"
	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/registry"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

// Identity headers injected for downstream services. Inbound copies are
// always stripped so a client cannot spoof an identity.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserName  = "X-User-Name"
	HeaderUserRoles = "X-User-Roles"
)

type Deps struct {
	JWTSecret []byte
	Picker    *registry.Picker
	Forwarder *proxy.Forwarder
	Routes    []Route
	Rules     []policy.Rule
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Any("/*", d.handle)
}

// handle runs the per-request pipeline: route match, principal extraction,
// policy evaluation, header injection, forward.
func (d *Deps) handle(c echo.Context) error {
	req := c.Request()
	path := req.URL.Path
	l := logging.FromContext(req.Context()).With("component", "gateway")

	rt := matchRoute(d.Routes, path)
	if rt == nil || rt.Deny {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not Found"})
	}

	principal, err := policy.PrincipalFromRequest(req, d.JWTSecret)
	if err != nil {
		l.Warn("rejected bearer token", "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	// Strip-prefix routes are evaluated against the rewritten path so the
	// same rules govern a resource however it was addressed.
	policyPath := path
	if rt.Strip > 0 {
		policyPath = proxy.StripSegments(path, rt.Strip)
	}

	switch policy.Evaluate(d.Rules, req.Method, policyPath, principal) {
	case policy.NeedAuth:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	case policy.Forbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}

	req.Header.Del(HeaderUserID)
	req.Header.Del(HeaderUserName)
	req.Header.Del(HeaderUserRoles)
	if principal != nil {
		req.Header.Set(HeaderUserID, principal.UserIDString())
		req.Header.Set(HeaderUserName, principal.Username)
		req.Header.Set(HeaderUserRoles, principal.RolesJoined())
	}

	instance := d.Picker.Pick(rt.Pool)
	if instance == "" {
		l.Error("no instance available", "pool", rt.Pool)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Bad Gateway"})
	}

	d.Forwarder.Forward(c.Response(), req, instance, rt.Strip, rt.PreserveHost)
	return nil
}

func matchRoute(routes []Route, path string) *Route {
	for i := range routes {
		if match.Any(routes[i].Patterns, path) {
			return &routes[i]
		}
	}
	return nil
}

func CommonMiddleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		ecM.Secure(),
	}
}
