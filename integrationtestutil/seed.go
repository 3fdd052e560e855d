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

package integrationtestutil

import (
	"testing"

	"github.com/l3montree-dev/bodhi/database/models"
	"gorm.io/gorm"
)

// CreateUser persists a user with the given password.
func CreateUser(t *testing.T, db *gorm.DB, userName, displayName, password string) models.User {
	t.Helper()
	user := models.User{UserName: userName, DisplayName: displayName}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("could not hash password: %s", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("could not create user: %s", err)
	}
	return user
}

// CreateFedora7 persists the fc7 release used throughout the tests.
func CreateFedora7(t *testing.T, db *gorm.DB) models.Release {
	t.Helper()
	rel := models.Release{
		Name:     "fc7",
		LongName: "Fedora 7",
		IDPrefix: "FEDORA",
		DistTag:  "dist-fc7",
	}
	if err := db.Create(&rel).Error; err != nil {
		t.Fatalf("could not create release: %s", err)
	}
	return rel
}
