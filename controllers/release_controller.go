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
	"net/http"

	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/transformer"
	"github.com/l3montree-dev/bodhi/utils"
	"github.com/labstack/echo/v4"
)

type ReleaseController struct {
	releaseService shared.ReleaseService
}

func NewReleaseController(releaseService shared.ReleaseService) *ReleaseController {
	return &ReleaseController{
		releaseService: releaseService,
	}
}

func (c *ReleaseController) List(ctx shared.Context) error {
	releases, err := c.releaseService.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list releases").WithInternal(err)
	}
	return ctx.JSON(http.StatusOK, utils.Map(releases, transformer.ReleaseToDTO))
}
