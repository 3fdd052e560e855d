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
	"github.com/l3montree-dev/bodhi/controllers"
	"github.com/l3montree-dev/bodhi/middlewares"
	"github.com/labstack/echo/v4"
)

type UpdatesRouter struct {
	*echo.Group
}

func NewUpdatesRouter(
	rootRouter RootRouter,
	sessionController *controllers.SessionController,
	updateController *controllers.UpdateController,
) UpdatesRouter {
	updatesRouter := rootRouter.Group.Group("/updates")

	updatesRouter.POST("/login/", sessionController.Login, middlewares.LoginRateLimiter())
	updatesRouter.POST("/logout/", sessionController.Logout)

	updatesRouter.GET("/", updateController.List)
	updatesRouter.GET("/:title/", updateController.Read)

	// the session is checked before any form field is looked at
	updatesRouter.POST("/save/", updateController.Save, middlewares.RequireSession())
	updatesRouter.DELETE("/:title/", updateController.Delete, middlewares.RequireSession())

	return UpdatesRouter{Group: updatesRouter}
}
