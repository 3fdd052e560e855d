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

package repositories

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/utils"
	"gorm.io/gorm"
)

type updateRepository struct {
	utils.Repository[uuid.UUID, models.PackageUpdate, *gorm.DB]
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) *updateRepository {
	return &updateRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.PackageUpdate](db),
	}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// preloadAll loads every relation of an update, children in submission order.
func preloadAll(db *gorm.DB) *gorm.DB {
	return db.Preload("Release").
		Preload("Submitter").
		Preload("Builds", byPosition).
		Preload("Bugs", byPosition).
		Preload("CVEs", byPosition)
}

func (r *updateRepository) FindByTitle(tx *gorm.DB, title string) (models.PackageUpdate, error) {
	var update models.PackageUpdate
	err := preloadAll(r.GetDB(tx)).Where("title = ?", title).First(&update).Error
	return update, err
}

func (r *updateRepository) ListPaged(pageInfo shared.PageInfo, releaseID *uuid.UUID) (shared.Paged[models.PackageUpdate], error) {
	byRelease := func(db *gorm.DB) *gorm.DB {
		if releaseID == nil {
			return db
		}
		return db.Where("release_id = ?", *releaseID)
	}

	var total int64
	if err := r.db.Model(&models.PackageUpdate{}).Scopes(byRelease).Count(&total).Error; err != nil {
		return shared.Paged[models.PackageUpdate]{}, err
	}

	var updates []models.PackageUpdate
	err := r.db.Scopes(byRelease, preloadAll, pageInfo.ApplyOnDB).Order("created_at DESC").Find(&updates).Error
	if err != nil {
		return shared.Paged[models.PackageUpdate]{}, err
	}

	return shared.NewPaged(pageInfo, total, updates), nil
}

func (r *updateRepository) FindBuildsByNVR(tx *gorm.DB, nvrs []string) ([]models.Build, error) {
	if len(nvrs) == 0 {
		return nil, nil
	}
	var builds []models.Build
	err := r.GetDB(tx).Where("nvr IN ?", nvrs).Find(&builds).Error
	return builds, err
}

func (r *updateRepository) FindBuildsByPackage(tx *gorm.DB, releaseID uuid.UUID, packages []string) ([]models.Build, error) {
	if len(packages) == 0 {
		return nil, nil
	}
	var builds []models.Build
	err := r.GetDB(tx).Joins("JOIN package_updates ON package_updates.id = builds.update_id").
		Where("package_updates.release_id = ? AND builds.package IN ?", releaseID, packages).
		Find(&builds).Error
	return builds, err
}

// DeleteWithChildren removes the update and all builds, bugs and cves owned by it.
// The children are deleted explicitly since sqlite does not enforce the cascade by default.
func (r *updateRepository) DeleteWithChildren(tx *gorm.DB, id uuid.UUID) error {
	db := r.GetDB(tx)
	for _, child := range []any{&models.Build{}, &models.Bug{}, &models.CVE{}} {
		if err := db.Where("update_id = ?", id).Delete(child).Error; err != nil {
			return err
		}
	}
	return db.Delete(&models.PackageUpdate{}, "id = ?", id).Error
}
