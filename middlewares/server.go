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
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func registerMiddlewares(e *echo.Echo) {
	e.Pre(middleware.AddTrailingSlash())
	e.Use(otelecho.Middleware("bodhi"))

	e.Use(logger())

	e.Use(recovermiddleware())

	e.HTTPErrorHandler = httpErrorHandler(e)
}

// httpErrorHandler renders every error as {"message": ...}.
// Field errors which reach the handler are rendered with their per field messages.
func httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		// do the logging straight inside the error handler
		// this keeps controller methods clean
		// otelecho hands the error to this handler before returning it to echo
		if ctx.Response().Committed {
			return
		}

		he := &echo.HTTPError{}
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			slog.Warn(err.Error(), "method", ctx.Request().Method, "path", loggableURL(ctx.Request().URL))
		} else {
			slog.Error(err.Error(), "method", ctx.Request().Method, "path", loggableURL(ctx.Request().URL))
		}

		var fe shared.FieldErrors
		if errors.As(err, &fe) {
			respond(ctx, http.StatusBadRequest, shared.ValidationErrorBody(fe))
			return
		}

		if !errors.As(err, &he) {
			he = &echo.HTTPError{
				Code:    http.StatusInternalServerError,
				Message: http.StatusText(http.StatusInternalServerError),
			}
		}

		var message any = he.Message
		switch m := he.Message.(type) {
		case string:
			if e.Debug && he.Internal != nil {
				message = echo.Map{"message": m, "error": he.Internal.Error()}
			} else {
				message = echo.Map{"message": m}
			}
		case error:
			message = echo.Map{"message": m.Error()}
		}

		respond(ctx, he.Code, message)
	}
}

func respond(ctx echo.Context, code int, body any) {
	var err error
	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, body)
	}
	if err != nil {
		slog.Error("could not send error response", "error", err)
	}
}

func Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(99)
	registerMiddlewares(e)
	return e
}
