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

package repositories

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/utils"
	"gorm.io/gorm"
)

type releaseRepository struct {
	utils.Repository[uuid.UUID, models.Release, *gorm.DB]
	db *gorm.DB
}

func NewReleaseRepository(db *gorm.DB) *releaseRepository {
	return &releaseRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Release](db),
	}
}

func (r *releaseRepository) FindByName(name string) (models.Release, error) {
	var rel models.Release
	err := r.db.Where("name = ?", name).First(&rel).Error
	return rel, err
}

func (r *releaseRepository) FindByLongName(longName string) (models.Release, error) {
	var rel models.Release
	err := r.db.Where("long_name = ?", longName).First(&rel).Error
	return rel, err
}

func (r *releaseRepository) AllOrderedByName() ([]models.Release, error) {
	var rels []models.Release
	err := r.db.Order("name ASC").Find(&rels).Error
	return rels, err
}
