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

package middlewares

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/utils"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the session token.
func SessionCookieName() string {
	return utils.EnvOr("SESSION_COOKIE_NAME", "bodhi_session")
}

func getCookie(name string, cookies []*http.Cookie) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// SessionMiddleware resolves the session cookie to a user.
// Requests without a valid session pass through without a user set.
func SessionMiddleware(authService shared.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie := getCookie(SessionCookieName(), ctx.Cookies())
			if cookie == nil || cookie.Value == "" {
				return next(ctx)
			}

			user, err := authService.Authenticate(cookie.Value)
			if err != nil {
				if errors.Is(err, shared.ErrUnauthenticated) {
					slog.Debug("ignoring invalid session cookie")
					return next(ctx)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "could not verify session").WithInternal(err)
			}

			shared.SetUser(ctx, user)
			shared.SetSessionToken(ctx, cookie.Value)
			return next(ctx)
		}
	}
}

// RequireSession rejects requests which did not pass a valid session before any
// handler logic runs.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, ok := shared.GetUser(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, shared.MessageUnauthenticated).WithInternal(shared.ErrUnauthenticated)
			}
			return next(ctx)
		}
	}
}
