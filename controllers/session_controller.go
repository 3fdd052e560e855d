// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/middlewares"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/transformer"
	"github.com/l3montree-dev/bodhi/utils"
	"github.com/labstack/echo/v4"
)

type SessionController struct {
	authService shared.AuthService
}

func NewSessionController(authService shared.AuthService) *SessionController {
	return &SessionController{
		authService: authService,
	}
}

func bindLoginForm(ctx shared.Context) (dtos.LoginForm, error) {
	var form dtos.LoginForm
	err := echo.FormFieldBinder(ctx).
		String("user_name", &form.UserName).
		String("password", &form.Password).
		String("forward_url", &form.ForwardURL).
		String("tg_format", &form.Format).
		BindError()
	return form, err
}

// isRelativeURL only accepts paths on this host, e.g. /updates/.
func isRelativeURL(forward string) bool {
	if !strings.HasPrefix(forward, "/") || strings.HasPrefix(forward, "//") || strings.HasPrefix(forward, "/\\") {
		return false
	}
	u, err := url.Parse(forward)
	return err == nil && !u.IsAbs() && u.Host == ""
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     middlewares.SessionCookieName(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   utils.EnvBool("SESSION_COOKIE_SECURE", false),
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *SessionController) Login(ctx shared.Context) error {
	form, err := bindLoginForm(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse login form").WithInternal(err)
	}

	if err := shared.V.Struct(form); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, shared.MessageInvalidCredentials).WithInternal(err)
	}

	session, err := c.authService.Login(form.UserName, form.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusForbidden, shared.MessageInvalidCredentials).WithInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not login").WithInternal(err)
	}

	cookie := sessionCookie(session.Token)
	cookie.Expires = session.ExpiresAt
	ctx.SetCookie(cookie)

	forward := ""
	if form.ForwardURL != "" && isRelativeURL(form.ForwardURL) {
		forward = form.ForwardURL
	}

	if forward != "" && form.Format != "json" {
		return ctx.Redirect(http.StatusFound, forward)
	}

	return ctx.JSON(http.StatusOK, dtos.LoginResponse{
		User:       transformer.UserToDTO(session.User),
		ForwardURL: forward,
	})
}

func (c *SessionController) Logout(ctx shared.Context) error {
	if err := c.authService.Logout(shared.GetSessionToken(ctx)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not logout").WithInternal(err)
	}

	cookie := sessionCookie("")
	cookie.MaxAge = -1
	ctx.SetCookie(cookie)

	return ctx.NoContent(http.StatusOK)
}

func (c *SessionController) Whoami(ctx shared.Context) error {
	user, ok := shared.GetUser(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, shared.MessageUnauthenticated)
	}
	return ctx.JSON(http.StatusOK, transformer.UserToDTO(user))
}
