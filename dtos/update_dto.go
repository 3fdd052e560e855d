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

package dtos

import (
	"time"

	"github.com/google/uuid"
)

// UpdateForm is the raw submission of POST /updates/save.
// Multi value fields are whitespace separated.
type UpdateForm struct {
	Builds  string `form:"builds" json:"builds" validate:"required"`
	Release string `form:"release" json:"release" validate:"required"`
	Type    string `form:"type" json:"type" validate:"required"`
	Bugs    string `form:"bugs" json:"bugs"`
	CVEs    string `form:"cves" json:"cves"`
	Notes   string `form:"notes" json:"notes" validate:"max=65536"`
}

type BuildDTO struct {
	NVR     string `json:"nvr"`
	Package string `json:"package"`
	Version string `json:"version"`
	Release string `json:"release"`
	PURL    string `json:"purl"`
}

type UpdateDTO struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Title     string     `json:"title"`
	Type      string     `json:"type"`
	Notes     string     `json:"notes"`
	Release   ReleaseDTO `json:"release"`
	Submitter UserDTO    `json:"submitter"`
	Builds    []BuildDTO `json:"builds"`
	Bugs      []int      `json:"bugs"`
	CVEs      []string   `json:"cves"`
}

type UpdateResponse struct {
	Update UpdateDTO `json:"update"`
}

type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
