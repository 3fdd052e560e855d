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
	"errors"
	"testing"

	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/database/repositories"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/integrationtestutil"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUpdateService(t *testing.T) (*updateService, *gorm.DB, models.User) {
	db := integrationtestutil.InitSQLiteDB(t)
	user := integrationtestutil.CreateUser(t, db, "guest", "Guest", "guest")
	integrationtestutil.CreateFedora7(t, db)

	s := NewUpdateService(repositories.NewUpdateRepository(db), repositories.NewReleaseRepository(db))
	return s, db, user
}

func countUpdates(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.PackageUpdate{}).Count(&n).Error)
	return n
}

func fieldErrors(t *testing.T, err error) shared.FieldErrors {
	t.Helper()
	var fe shared.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	return fe
}

func TestSubmit(t *testing.T) {
	t.Run("should store a valid bugfix update with its builds and bugs", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		update, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "bugfix",
			Bugs:    "1234 5678",
			Notes:   "this is a test",
		})
		require.NoError(t, err)

		assert.Equal(t, "TurboGears-1.0.2.2-2.fc7", update.Title)
		assert.Equal(t, models.UpdateTypeBugfix, update.Type)
		assert.Equal(t, "fc7", update.Release.Name)
		assert.Equal(t, "guest", update.Submitter.UserName)
		require.Len(t, update.Builds, 1)
		assert.Equal(t, "TurboGears", update.Builds[0].Package)
		require.Len(t, update.Bugs, 2)
		assert.Equal(t, 1234, update.Bugs[0].BugID)
		assert.Equal(t, 5678, update.Bugs[1].BugID)
	})

	t.Run("should classify an update with a cve as security", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		update, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "bugfix",
			CVEs:    "CVE-2007-1234",
		})
		require.NoError(t, err)

		assert.Equal(t, models.UpdateTypeSecurity, update.Type)
		assert.Equal(t, []string{"CVE-2007-1234"}, update.CVEIDs())
	})

	t.Run("should attach every cve token as submitted", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		update, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "security",
			CVEs:    "CVE-2007-1234  CVE-2007-0001 CVE-2007-1234",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"CVE-2007-1234", "CVE-2007-0001", "CVE-2007-1234"}, update.CVEIDs())
	})

	t.Run("should reference every build of a multi build update", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		update, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7 python-sqlobject-0.8.2-1.fc7",
			Release: "Fedora 7",
			Type:    "enhancement",
		})
		require.NoError(t, err)

		assert.Equal(t, "TurboGears-1.0.2.2-2.fc7 python-sqlobject-0.8.2-1.fc7", update.Title)
		require.Len(t, update.Builds, 2)
		assert.Equal(t, "TurboGears-1.0.2.2-2.fc7", update.Builds[0].NVR)
		assert.Equal(t, "python-sqlobject-0.8.2-1.fc7", update.Builds[1].NVR)
		for _, b := range update.Builds {
			assert.Equal(t, update.ID, b.UpdateID)
		}
	})

	t.Run("should round trip unicode notes", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "bugfix",
			Notes:   "Foo’bar",
		})
		require.NoError(t, err)

		update, err := s.Read("TurboGears-1.0.2.2-2.fc7")
		require.NoError(t, err)
		assert.Equal(t, "Foo’bar", update.Notes)
	})

	t.Run("should reject a malformed build and persist nothing", func(t *testing.T) {
		s, db, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7 foobar",
			Release: "Fedora 7",
			Type:    "bugfix",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidBuildFormat)

		fe := fieldErrors(t, err)
		assert.Equal(t, shared.MessageInvalidBuildFormat, fe["builds"].Message)
		assert.Zero(t, countUpdates(t, db))

		var builds int64
		require.NoError(t, db.Model(&models.Build{}).Count(&builds).Error)
		assert.Zero(t, builds)
	})

	t.Run("should list the valid releases for an unknown release", func(t *testing.T) {
		s, db, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Foobar 1",
			Type:    "bugfix",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrUnknownRelease)

		fe := fieldErrors(t, err)
		assert.Equal(t, "Value must be one of: Fedora 7 (not 'Foobar 1')", fe["release"].Message)
		assert.Zero(t, countUpdates(t, db))
	})

	t.Run("should list the valid types for an unknown type", func(t *testing.T) {
		s, db, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "REGRESSION!",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidType)

		fe := fieldErrors(t, err)
		assert.Equal(t, "Value must be one of: bugfix; enhancement; security (not 'REGRESSION!')", fe["type"].Message)
		assert.Zero(t, countUpdates(t, db))
	})

	t.Run("should collect errors of every field", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "foobar",
			Release: "Foobar 1",
			Type:    "REGRESSION!",
			Bugs:    "abc",
		})
		require.Error(t, err)

		fe := fieldErrors(t, err)
		assert.Len(t, fe, 4)
		assert.Equal(t, shared.MessageInvalidBug, fe["bugs"].Message)
	})

	t.Run("should require builds, release and type", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{Builds: "   "})
		require.Error(t, err)

		fe := fieldErrors(t, err)
		for _, field := range []string{"builds", "release", "type"} {
			assert.Equal(t, shared.MessageRequired, fe[field].Message, field)
		}
	})

	t.Run("should reject two builds of the same package", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		_, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7 TurboGears-1.0.2.2-3.fc7",
			Release: "Fedora 7",
			Type:    "bugfix",
		})
		require.Error(t, err)
		assert.Equal(t, shared.MessageDuplicateBuild, fieldErrors(t, err)["builds"].Message)
	})

	t.Run("should collapse repeated builds and bugs", func(t *testing.T) {
		s, _, user := setupUpdateService(t)

		update, err := s.Submit(user, dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7 TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "bugfix",
			Bugs:    "1 #1 2",
		})
		require.NoError(t, err)
		assert.Equal(t, "TurboGears-1.0.2.2-2.fc7", update.Title)
		assert.Len(t, update.Bugs, 2)
	})

	t.Run("should reject a build which is already part of an update", func(t *testing.T) {
		s, db, user := setupUpdateService(t)

		form := dtos.UpdateForm{
			Builds:  "TurboGears-1.0.2.2-2.fc7",
			Release: "Fedora 7",
			Type:    "bugfix",
		}
		_, err := s.Submit(user, form)
		require.NoError(t, err)

		form.Builds = "python-sqlobject-0.8.2-1.fc7 TurboGears-1.0.2.2-2.fc7"
		_, err = s.Submit(user, form)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Equal(t, "Update for TurboGears-1.0.2.2-2.fc7 already exists", fieldErrors(t, err)["builds"].Message)
		assert.Equal(t, int64(1), countUpdates(t, db))
	})
}

func TestSubmitOlderBuild(t *testing.T) {
	s, db, user := setupUpdateService(t)

	_, err := s.Submit(user, dtos.UpdateForm{Builds: "TurboGears-1.0.2.2-2.fc7", Release: "Fedora 7", Type: "bugfix"})
	require.NoError(t, err)

	t.Run("should reject a build older than a submitted one", func(t *testing.T) {
		_, err := s.Submit(user, dtos.UpdateForm{Builds: "TurboGears-1.0.2.2-1.fc7", Release: "Fedora 7", Type: "bugfix"})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Equal(t, "Newer build of TurboGears already submitted: TurboGears-1.0.2.2-2.fc7", fieldErrors(t, err)["builds"].Message)
	})

	t.Run("should accept a newer build", func(t *testing.T) {
		_, err := s.Submit(user, dtos.UpdateForm{Builds: "TurboGears-1.0.2.10-1.fc7", Release: "Fedora 7", Type: "bugfix"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), countUpdates(t, db))
	})
}

func TestListUpdates(t *testing.T) {
	s, db, user := setupUpdateService(t)
	f8 := models.Release{Name: "f8", LongName: "Fedora 8", IDPrefix: "FEDORA", DistTag: "dist-f8"}
	require.NoError(t, db.Create(&f8).Error)

	for _, f := range []dtos.UpdateForm{
		{Builds: "TurboGears-1.0.2.2-2.fc7", Release: "Fedora 7", Type: "bugfix"},
		{Builds: "python-sqlobject-0.8.2-1.fc7", Release: "Fedora 7", Type: "bugfix"},
		{Builds: "TurboGears-1.0.4-1.fc8", Release: "Fedora 8", Type: "enhancement"},
	} {
		_, err := s.Submit(user, f)
		require.NoError(t, err)
	}

	t.Run("should list all updates", func(t *testing.T) {
		paged, err := s.List(shared.PageInfo{Page: 1, PageSize: 10}, "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), paged.Total)
		assert.Len(t, paged.Data, 3)
	})

	t.Run("should page", func(t *testing.T) {
		paged, err := s.List(shared.PageInfo{Page: 2, PageSize: 2}, "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), paged.Total)
		assert.Len(t, paged.Data, 1)
	})

	t.Run("should filter by release name", func(t *testing.T) {
		paged, err := s.List(shared.PageInfo{Page: 1, PageSize: 10}, "f8")
		require.NoError(t, err)
		assert.Equal(t, int64(1), paged.Total)
		assert.Equal(t, "TurboGears-1.0.4-1.fc8", paged.Data[0].Title)
	})

	t.Run("should fail for an unknown release", func(t *testing.T) {
		_, err := s.List(shared.PageInfo{Page: 1, PageSize: 10}, "el5")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDeleteUpdate(t *testing.T) {
	t.Run("should only allow the submitter to delete", func(t *testing.T) {
		s, db, user := setupUpdateService(t)
		other := integrationtestutil.CreateUser(t, db, "other", "Other", "other")

		_, err := s.Submit(user, dtos.UpdateForm{Builds: "TurboGears-1.0.2.2-2.fc7", Release: "Fedora 7", Type: "bugfix", Bugs: "1", CVEs: "CVE-2007-0001"})
		require.NoError(t, err)

		err = s.Delete(other, "TurboGears-1.0.2.2-2.fc7")
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, int64(1), countUpdates(t, db))

		require.NoError(t, s.Delete(user, "TurboGears-1.0.2.2-2.fc7"))
		assert.Zero(t, countUpdates(t, db))

		var children int64
		for _, m := range []any{&models.Build{}, &models.Bug{}, &models.CVE{}} {
			var n int64
			require.NoError(t, db.Model(m).Count(&n).Error)
			children += n
		}
		assert.Zero(t, children)
	})

	t.Run("should return not found for an unknown title", func(t *testing.T) {
		s, _, user := setupUpdateService(t)
		assert.ErrorIs(t, s.Delete(user, "foo-1-1"), shared.ErrNotFound)

		_, err := s.Read("foo-1-1")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
