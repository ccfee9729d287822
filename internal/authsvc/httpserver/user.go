package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/service"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_register")

	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// On a mail failure the account row is already persisted; the 502 tells
	// the client to retry via resend-verification.
	user, err := h.Svc.Register(ctx, in)
	if err != nil {
		return httpError(err)
	}

	l.Info("user registered", "username", user.Username)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    toUserResponse(user),
	})
}

func (h *UserHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Svc.FindByUsername(ctx, c.Get(ctxUsername).(string))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Svc.FindByUsername(ctx, c.Get(ctxUsername).(string))
	if err != nil {
		return httpError(err)
	}

	var in service.UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.Update(ctx, user.ID, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

func (h *UserHTTP) DeleteMe(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Svc.FindByUsername(ctx, c.Get(ctxUsername).(string))
	if err != nil {
		return httpError(err)
	}
	if err := h.Svc.Delete(ctx, user.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted"})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	users, total, err := h.Svc.List(ctx, page, size)
	if err != nil {
		return httpError(err)
	}

	content := make([]userResponse, 0, len(users))
	for i := range users {
		content = append(content, toUserResponse(&users[i]))
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return c.JSON(http.StatusOK, pageResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	})
}

func (h *UserHTTP) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	user, err := h.Svc.FindByID(ctx, uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHTTP) DeleteByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := h.Svc.Delete(ctx, uint(id)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// Internal lookups are reachable only inside the private network: the
// gateway refuses /api/v1/user/internal/** with 404 before it can be routed.

func (h *UserHTTP) InternalByID(c echo.Context) error {
	return h.GetByID(c)
}

func (h *UserHTTP) InternalByUsername(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Svc.FindByUsername(ctx, c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
