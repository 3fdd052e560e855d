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

package models

import (
	"slices"

	"github.com/google/uuid"
)

type UpdateType string

const (
	UpdateTypeBugfix      UpdateType = "bugfix"
	UpdateTypeEnhancement UpdateType = "enhancement"
	UpdateTypeSecurity    UpdateType = "security"
)

// UpdateTypes returns the closed set of update types in display order.
func UpdateTypes() []UpdateType {
	return []UpdateType{UpdateTypeBugfix, UpdateTypeEnhancement, UpdateTypeSecurity}
}

func (t UpdateType) Valid() bool {
	return slices.Contains(UpdateTypes(), t)
}

// ClassifyUpdateType returns the type an update is stored with.
// Any attached CVE turns the update into a security update.
func ClassifyUpdateType(declared UpdateType, cves []string) UpdateType {
	if len(cves) > 0 {
		return UpdateTypeSecurity
	}
	return declared
}

type PackageUpdate struct {
	Model
	// Title is the space separated list of build NVRs in submission order.
	Title string     `json:"title" gorm:"type:text;not null;uniqueIndex"`
	Type  UpdateType `json:"type" gorm:"type:text;not null"`
	Notes string     `json:"notes" gorm:"type:text"`

	ReleaseID uuid.UUID `json:"releaseId" gorm:"type:uuid;not null;index"`
	Release   Release   `json:"release" gorm:"foreignKey:ReleaseID;references:ID;constraint:OnDelete:RESTRICT;"`

	SubmitterID uuid.UUID `json:"submitterId" gorm:"type:uuid;not null;index"`
	Submitter   User      `json:"submitter" gorm:"foreignKey:SubmitterID;references:ID;constraint:OnDelete:CASCADE;"`

	Builds []Build `json:"builds" gorm:"foreignKey:UpdateID;constraint:OnDelete:CASCADE;"`
	Bugs   []Bug   `json:"bugs" gorm:"foreignKey:UpdateID;constraint:OnDelete:CASCADE;"`
	CVEs   []CVE   `json:"cves" gorm:"foreignKey:UpdateID;constraint:OnDelete:CASCADE;"`
}

func (m PackageUpdate) TableName() string {
	return "package_updates"
}

func (m PackageUpdate) CVEIDs() []string {
	ids := make([]string, len(m.CVEs))
	for i, c := range m.CVEs {
		ids[i] = c.CVEID
	}
	return ids
}

// Build is a single package build, identified by its name-version-release string.
type Build struct {
	Model
	NVR      string    `json:"nvr" gorm:"type:text;not null;uniqueIndex"`
	Package  string    `json:"package" gorm:"type:text;not null;index"`
	Position int       `json:"position" gorm:"not null;default:0"`
	UpdateID uuid.UUID `json:"updateId" gorm:"type:uuid;not null;index"`
}

func (m Build) TableName() string {
	return "builds"
}

type Bug struct {
	Model
	BugID    int       `json:"bugId" gorm:"not null;index"`
	Position int       `json:"position" gorm:"not null;default:0"`
	UpdateID uuid.UUID `json:"updateId" gorm:"type:uuid;not null;index"`
}

func (m Bug) TableName() string {
	return "bugs"
}

type CVE struct {
	Model
	CVEID    string    `json:"cveId" gorm:"column:cve_id;type:text;not null;index"`
	Position int       `json:"position" gorm:"not null;default:0"`
	UpdateID uuid.UUID `json:"updateId" gorm:"type:uuid;not null;index"`
}

func (m CVE) TableName() string {
	return "cves"
}
