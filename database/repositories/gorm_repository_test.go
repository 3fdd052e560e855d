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
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/integrationtestutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormRepository(t *testing.T) {
	db := integrationtestutil.InitSQLiteDB(t)
	r := newGormRepository[uuid.UUID, models.Release](db)

	fc7 := models.Release{Name: "fc7", LongName: "Fedora 7", IDPrefix: "FEDORA", DistTag: "dist-fc7"}
	require.NoError(t, r.Create(nil, &fc7))
	assert.NotEqual(t, uuid.Nil, fc7.ID)

	t.Run("should read by id", func(t *testing.T) {
		found, err := r.Read(fc7.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fedora 7", found.LongName)
	})

	t.Run("should skip conflicting rows in a batch", func(t *testing.T) {
		err := r.CreateBatch(nil, []models.Release{
			{Name: "fc7", LongName: "Fedora 7", IDPrefix: "FEDORA", DistTag: "dist-fc7"},
			{Name: "f8", LongName: "Fedora 8", IDPrefix: "FEDORA", DistTag: "dist-f8"},
		})
		require.NoError(t, err)

		all, err := r.All()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("should roll back a failed transaction", func(t *testing.T) {
		err := r.Transaction(func(tx *gorm.DB) error {
			f9 := models.Release{Name: "f9", LongName: "Fedora 9", IDPrefix: "FEDORA", DistTag: "dist-f9"}
			if err := r.Create(tx, &f9); err != nil {
				return err
			}
			return errors.New("abort")
		})
		assert.Error(t, err)

		all, err := r.All()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("should list and delete by id", func(t *testing.T) {
		listed, err := r.List([]uuid.UUID{fc7.ID})
		require.NoError(t, err)
		require.Len(t, listed, 1)

		empty, err := r.List(nil)
		require.NoError(t, err)
		assert.Empty(t, empty)

		require.NoError(t, r.Delete(nil, fc7.ID))
		_, err = r.Read(fc7.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
