// Copyright (C) 2025 l3montree GmbH
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

package models

// Release is a distribution release updates are filed against, e.g. "fc7" / "Fedora 7".
type Release struct {
	Model
	Name     string `json:"name" gorm:"type:text;not null;uniqueIndex"`
	LongName string `json:"longName" gorm:"type:text;not null;uniqueIndex"`
	IDPrefix string `json:"idPrefix" gorm:"type:text;not null"`
	DistTag  string `json:"distTag" gorm:"type:text;not null"`

	Updates []PackageUpdate `json:"updates,omitempty" gorm:"foreignKey:ReleaseID"`
}

func (m Release) TableName() string {
	return "releases"
}
