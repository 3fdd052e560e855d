// Copyright (C) 2025 timbastin
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

package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/utils"
)

type UserRepository interface {
	utils.Repository[uuid.UUID, models.User, DB]
	FindByUserName(userName string) (models.User, error)
}

type SessionRepository interface {
	utils.Repository[uuid.UUID, models.Session, DB]
	// FindByToken returns the session with its user preloaded.
	FindByToken(token string) (models.Session, error)
	DeleteByToken(tx DB, token string) error
	DeleteExpired(tx DB, now time.Time) (int64, error)
}

type ReleaseRepository interface {
	utils.Repository[uuid.UUID, models.Release, DB]
	FindByName(name string) (models.Release, error)
	FindByLongName(longName string) (models.Release, error)
	AllOrderedByName() ([]models.Release, error)
}

type UpdateRepository interface {
	utils.Repository[uuid.UUID, models.PackageUpdate, DB]
	// FindByTitle returns the update with release, submitter, builds, bugs and cves preloaded.
	FindByTitle(tx DB, title string) (models.PackageUpdate, error)
	ListPaged(pageInfo PageInfo, releaseID *uuid.UUID) (Paged[models.PackageUpdate], error)
	// FindBuildsByNVR returns every persisted build matching one of nvrs.
	FindBuildsByNVR(tx DB, nvrs []string) ([]models.Build, error)
	// FindBuildsByPackage returns the builds of the given packages submitted to a release.
	FindBuildsByPackage(tx DB, releaseID uuid.UUID, packages []string) ([]models.Build, error)
	DeleteWithChildren(tx DB, id uuid.UUID) error
}

type AuthService interface {
	Login(userName, password string) (models.Session, error)
	Logout(token string) error
	Authenticate(token string) (models.User, error)
	CreateUser(userName, displayName, password string) (models.User, error)
	PurgeExpiredSessions() (int64, error)
}

type UpdateService interface {
	Submit(submitter models.User, form dtos.UpdateForm) (models.PackageUpdate, error)
	Read(title string) (models.PackageUpdate, error)
	List(pageInfo PageInfo, release string) (Paged[models.PackageUpdate], error)
	Delete(requester models.User, title string) error
}

type ReleaseService interface {
	List() ([]models.Release, error)
	Create(r *models.Release) error
}
