package httpserver

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/oauth"
	"github.com/TBanda27/Ecommerce-bookstore/internal/authsvc/service"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/logging"
)

const stateCookie = "oauth2_state"

type OAuthHTTP struct {
	Svc      *service.UserService
	Provider oauth.Provider

	// FrontendURL receives the token on a successful browser login.
	FrontendURL string
}

// LoginGoogle sends the browser to Google's consent screen with a one-shot
// state nonce bound to this client via cookie.
func (h *OAuthHTTP) LoginGoogle(c echo.Context) error {
	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.Provider.AuthCodeURL(state))
}

// Callback completes the code flow: state check, code exchange, account
// linking, token issue. Swagger UI logins get an HTML page that shows the
// token; everything else is redirected to the frontend with the token in
// the query string.
func (h *OAuthHTTP) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "oauth_callback")

	if errParam := c.QueryParam("error"); errParam != "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "provider error: "+errParam)
	}

	state := c.QueryParam("state")
	cookie, err := c.Cookie(stateCookie)
	if err != nil || state == "" || cookie.Value != state {
		return echo.NewHTTPError(http.StatusUnauthorized, "state mismatch")
	}
	c.SetCookie(&http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code query parameter is required")
	}

	info, err := h.Provider.Exchange(ctx, code)
	if err != nil {
		l.Error("code exchange failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "authorization code exchange failed")
	}

	user, token, err := h.Svc.OAuthLogin(ctx, info.Email, info.Name)
	if err != nil {
		return httpError(err)
	}
	l.Info("oauth2 login", "username", user.Username)

	if strings.Contains(c.Request().Referer(), "swagger-ui") {
		return c.Redirect(http.StatusFound, "/api/v1/oauth2/token-display?"+tokenQuery(token, user.Username, user.Email))
	}
	return c.Redirect(http.StatusFound, h.FrontendURL+"/?"+tokenQuery(token, user.Username, user.Email))
}

// TokenDisplay renders the issued token for manual copy, mainly for trying
// the API from Swagger UI where a frontend redirect has nowhere to land.
func (h *OAuthHTTP) TokenDisplay(c echo.Context) error {
	data := struct {
		Token    string
		Username string
		Email    string
	}{
		Token:    c.QueryParam("token"),
		Username: c.QueryParam("username"),
		Email:    c.QueryParam("email"),
	}
	if data.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token query parameter is required")
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return tokenDisplayTmpl.Execute(c.Response(), data)
}

func tokenQuery(token, username, email string) string {
	v := url.Values{}
	v.Set("token", token)
	v.Set("username", username)
	v.Set("email", email)
	return v.Encode()
}

var tokenDisplayTmpl = template.Must(template.New("token").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>BookStore - Login Successful</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 48px auto; padding: 0 16px; }
    .token { word-break: break-all; background: #f4f4f4; padding: 12px; border-radius: 6px; font-family: monospace; }
    button { margin-top: 12px; padding: 8px 16px; }
  </style>
</head>
<body>
  <h2>Login successful</h2>
  <p>Signed in as <strong>{{.Username}}</strong> ({{.Email}}).</p>
  <p>Use this bearer token to authorize your requests:</p>
  <div class="token" id="token">{{.Token}}</div>
  <button onclick="navigator.clipboard.writeText(document.getElementById('token').innerText)">Copy token</button>
</body>
</html>
`))
