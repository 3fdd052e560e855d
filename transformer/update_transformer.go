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

package transformer

import (
	"log/slog"
	"strings"

	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/normalize"
	"github.com/l3montree-dev/bodhi/utils"
)

func BuildToDTO(b models.Build, release models.Release) dtos.BuildDTO {
	dto := dtos.BuildDTO{
		NVR:     b.NVR,
		Package: b.Package,
	}
	nvr, err := normalize.ParseNVR(b.NVR)
	if err != nil {
		slog.Warn("stored build is not a valid nvr", "nvr", b.NVR)
		return dto
	}
	dto.Version = nvr.Version
	dto.Release = nvr.Release
	dto.PURL = nvr.PURL(strings.ToLower(release.IDPrefix))
	return dto
}

func UpdateToDTO(u models.PackageUpdate) dtos.UpdateDTO {
	return dtos.UpdateDTO{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Title:     u.Title,
		Type:      string(u.Type),
		Notes:     u.Notes,
		Release:   ReleaseToDTO(u.Release),
		Submitter: UserToDTO(u.Submitter),
		Builds: utils.Map(u.Builds, func(b models.Build) dtos.BuildDTO {
			return BuildToDTO(b, u.Release)
		}),
		Bugs: utils.Map(u.Bugs, func(b models.Bug) int {
			return b.BugID
		}),
		CVEs: u.CVEIDs(),
	}
}
