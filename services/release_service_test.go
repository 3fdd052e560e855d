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

package services

import (
	"testing"

	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/database/repositories"
	"github.com/l3montree-dev/bodhi/integrationtestutil"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseService(t *testing.T) {
	db := integrationtestutil.InitSQLiteDB(t)
	s := NewReleaseService(repositories.NewReleaseRepository(db))

	t.Run("should derive the name from the long name", func(t *testing.T) {
		r := models.Release{LongName: "Fedora 8", IDPrefix: "FEDORA", DistTag: "dist-f8"}
		require.NoError(t, s.Create(&r))
		assert.Equal(t, "fedora-8", r.Name)
	})

	t.Run("should keep an explicit name", func(t *testing.T) {
		r := models.Release{Name: "fc7", LongName: "Fedora 7", IDPrefix: "FEDORA", DistTag: "dist-fc7"}
		require.NoError(t, s.Create(&r))
		assert.Equal(t, "fc7", r.Name)
	})

	t.Run("should reject a duplicate long name", func(t *testing.T) {
		r := models.Release{LongName: "Fedora 7", Name: "f7", IDPrefix: "FEDORA", DistTag: "dist-fc7"}
		assert.ErrorIs(t, s.Create(&r), shared.ErrAlreadyExists)
	})

	t.Run("should reject a lowercase id prefix", func(t *testing.T) {
		r := models.Release{LongName: "Fedora 9", IDPrefix: "fedora", DistTag: "dist-f9"}
		assert.ErrorIs(t, s.Create(&r), shared.ErrInvalidValue)
	})

	t.Run("should list releases ordered by name", func(t *testing.T) {
		releases, err := s.List()
		require.NoError(t, err)
		require.Len(t, releases, 2)
		assert.Equal(t, "fc7", releases[0].Name)
		assert.Equal(t, "fedora-8", releases[1].Name)
	})
}

func TestReleaseImport(t *testing.T) {
	db := integrationtestutil.InitSQLiteDB(t)
	s := NewReleaseService(repositories.NewReleaseRepository(db))
	require.NoError(t, s.Create(&models.Release{Name: "fc7", LongName: "Fedora 7", IDPrefix: "FEDORA", DistTag: "dist-fc7"}))

	t.Run("should skip existing releases and derive missing names", func(t *testing.T) {
		err := s.Import([]models.Release{
			{Name: "fc7", LongName: "Fedora 7", IDPrefix: "FEDORA", DistTag: "dist-fc7"},
			{LongName: "Fedora 8", IDPrefix: "FEDORA", DistTag: "dist-f8"},
		})
		require.NoError(t, err)

		releases, err := s.List()
		require.NoError(t, err)
		require.Len(t, releases, 2)
		assert.Equal(t, "fedora-8", releases[1].Name)
	})

	t.Run("should write nothing when one release is invalid", func(t *testing.T) {
		err := s.Import([]models.Release{
			{LongName: "Fedora 9", IDPrefix: "FEDORA", DistTag: "dist-f9"},
			{LongName: "Fedora 10", IDPrefix: "fedora", DistTag: "dist-f10"},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidValue)

		releases, err := s.List()
		require.NoError(t, err)
		assert.Len(t, releases, 2)
	})
}
