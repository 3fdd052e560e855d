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

	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/transformer"
	"github.com/labstack/echo/v4"
)

type UpdateController struct {
	updateService shared.UpdateService
}

func NewUpdateController(updateService shared.UpdateService) *UpdateController {
	return &UpdateController{
		updateService: updateService,
	}
}

// bindUpdateForm reads the form from the request body and the query string.
func bindUpdateForm(ctx shared.Context) (dtos.UpdateForm, error) {
	var form dtos.UpdateForm
	err := echo.FormFieldBinder(ctx).
		String("builds", &form.Builds).
		String("release", &form.Release).
		String("type", &form.Type).
		String("bugs", &form.Bugs).
		String("cves", &form.CVEs).
		String("notes", &form.Notes).
		BindError()
	return form, err
}

func titleParam(ctx shared.Context) string {
	title := shared.SanitizeParam(shared.GetParam(ctx, "title"))
	if unescaped, err := url.PathUnescape(title); err == nil {
		return unescaped
	}
	return title
}

func (c *UpdateController) Save(ctx shared.Context) error {
	user, ok := shared.GetUser(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, shared.MessageUnauthenticated)
	}

	form, err := bindUpdateForm(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse update form").WithInternal(err)
	}

	update, err := c.updateService.Submit(user, form)
	if err != nil {
		var fe shared.FieldErrors
		if errors.As(err, &fe) {
			code := http.StatusBadRequest
			if errors.Is(err, shared.ErrAlreadyExists) {
				code = http.StatusConflict
			}
			return ctx.JSON(code, shared.ValidationErrorBody(fe))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save update").WithInternal(err)
	}

	return ctx.JSON(http.StatusOK, dtos.UpdateResponse{
		Update: transformer.UpdateToDTO(update),
	})
}

func (c *UpdateController) List(ctx shared.Context) error {
	paged, err := c.updateService.List(shared.GetPageInfo(ctx), ctx.QueryParam("release"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "release not found").WithInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list updates").WithInternal(err)
	}

	return ctx.JSON(http.StatusOK, paged.Map(func(u models.PackageUpdate) any {
		return transformer.UpdateToDTO(u)
	}))
}

func (c *UpdateController) Read(ctx shared.Context) error {
	update, err := c.updateService.Read(titleParam(ctx))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "update not found").WithInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not read update").WithInternal(err)
	}

	return ctx.JSON(http.StatusOK, dtos.UpdateResponse{
		Update: transformer.UpdateToDTO(update),
	})
}

func (c *UpdateController) Delete(ctx shared.Context) error {
	user, ok := shared.GetUser(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, shared.MessageUnauthenticated)
	}

	if err := c.updateService.Delete(user, titleParam(ctx)); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "update not found").WithInternal(err)
		case errors.Is(err, shared.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "only the submitter may delete an update").WithInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete update").WithInternal(err)
	}

	return ctx.NoContent(http.StatusOK)
}
