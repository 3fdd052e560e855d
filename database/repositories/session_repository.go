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
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/utils"
	"gorm.io/gorm"
)

type sessionRepository struct {
	utils.Repository[uuid.UUID, models.Session, *gorm.DB]
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Session](db),
	}
}

func (r *sessionRepository) FindByToken(token string) (models.Session, error) {
	var session models.Session
	err := r.db.Preload("User").Where("token = ?", token).First(&session).Error
	return session, err
}

func (r *sessionRepository) DeleteByToken(tx *gorm.DB, token string) error {
	return r.GetDB(tx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(tx *gorm.DB, now time.Time) (int64, error) {
	res := r.GetDB(tx).Where("expires_at <= ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
