package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/service"
)

// errorBody is the stable error envelope returned by every failing request.
type errorBody struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

// ErrorHandler renders any handler error as the envelope. Wire it as the
// Echo HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal Server Error"
	details := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			details = he.Internal.Error()
		}
	}

	_ = c.JSON(code, errorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   msg,
		Details:   details,
	})
}

// httpError maps service error kinds onto transport statuses.
func httpError(err error) *echo.HTTPError {
	var code int
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
		code = http.StatusConflict
	case errors.Is(err, service.ErrInvalidToken):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrExpiredToken):
		code = http.StatusGone
	case errors.Is(err, service.ErrAlreadyVerified):
		code = http.StatusConflict
	case errors.Is(err, service.ErrMailSend):
		code = http.StatusBadGateway
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error").SetInternal(err)
	}
	return echo.NewHTTPError(code, err.Error())
}
