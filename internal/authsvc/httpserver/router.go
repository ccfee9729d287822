// Package httpserver exposes the user service over HTTP. Authentication is
// the gateway's job: handlers here trust the identity headers it injects.
package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/oauth"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/service"
)

func CommonMiddleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Secure(),
	}
}

type Deps struct {
	Svc         *service.UserService
	Provider    oauth.Provider
	FrontendURL string
}

// Register mounts every route on e.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = ErrorHandler

	authH := &AuthHTTP{Svc: d.Svc}
	userH := &UserHTTP{Svc: d.Svc}
	oauthH := &OAuthHTTP{Svc: d.Svc, Provider: d.Provider, FrontendURL: d.FrontendURL}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "UP"})
	})

	auth := e.Group("/api/v1/auth")
	auth.POST("/login", authH.Login)
	auth.GET("/verify", authH.Verify)
	auth.POST("/resend-verification", authH.ResendVerification)

	o := e.Group("/api/v1/oauth2")
	o.GET("/login/google", oauthH.LoginGoogle)
	o.GET("/callback/google", oauthH.Callback)
	o.GET("/token-display", oauthH.TokenDisplay)
	// Google is also configured with the bare callback path.
	e.GET("/login/oauth2/code/google", oauthH.Callback)

	user := e.Group("/api/v1/user")
	user.POST("", userH.Register)
	user.GET("/me", userH.Me, RequireIdentity)
	user.PUT("/me", userH.UpdateMe, RequireIdentity)
	user.DELETE("/me", userH.DeleteMe, RequireIdentity)

	user.GET("", userH.List, RequireAdmin)
	user.GET("/:id", userH.GetByID, RequireAdmin)
	user.DELETE("/:id", userH.DeleteByID, RequireAdmin)

	internal := user.Group("/internal")
	internal.GET("/:id", userH.InternalByID)
	internal.GET("/username/:username", userH.InternalByUsername)
}
