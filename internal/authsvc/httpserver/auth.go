package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/service"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.UserService
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}

	res, err := h.Svc.Login(ctx, identifier, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:   "Login Successful",
		Token:     res.Token,
		Type:      "Bearer",
		ExpiresIn: res.ExpiresIn,
		Username:  res.Username,
		Email:     res.Email,
	})
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token query parameter is required")
	}

	msg, err := h.Svc.Verify(ctx, token)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

func (h *AuthHTTP) ResendVerification(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email query parameter is required")
	}

	if err := h.Svc.ResendVerification(ctx, email); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Verification email resent to " + email})
}
