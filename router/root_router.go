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

package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/bodhi/cmd/bodhi/api"
	"github.com/l3montree-dev/bodhi/controllers"
	"github.com/l3montree-dev/bodhi/middlewares"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RootRouter carries the session of every request.
type RootRouter struct {
	*echo.Group
}

func NewRootRouter(srv api.Server,
	db shared.DB,
	pool *pgxpool.Pool,
	authService shared.AuthService,
	sessionController *controllers.SessionController,
) RootRouter {
	rootRouter := srv.Echo.Group("", middlewares.SessionMiddleware(authService))

	rootRouter.GET("/health/", healthHandler(db))
	rootRouter.GET("/info/", infoHandler(db, pool))
	rootRouter.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	rootRouter.GET("/whoami/", sessionController.Whoami, middlewares.RequireSession())

	return RootRouter{Group: rootRouter}
}
