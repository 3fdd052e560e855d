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
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/shared"
)

type releaseService struct {
	releaseRepository shared.ReleaseRepository
}

func NewReleaseService(releaseRepository shared.ReleaseRepository) *releaseService {
	return &releaseService{
		releaseRepository: releaseRepository,
	}
}

func (s *releaseService) List() ([]models.Release, error) {
	return s.releaseRepository.AllOrderedByName()
}

// prepareRelease trims the release, derives a missing short name from the long name and validates it.
func prepareRelease(r *models.Release) error {
	r.LongName = strings.TrimSpace(r.LongName)
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		r.Name = slug.Make(r.LongName)
	}

	fe, err := shared.ValidateStruct(dtos.ReleaseCreateRequest{
		Name:     r.Name,
		LongName: r.LongName,
		IDPrefix: r.IDPrefix,
		DistTag:  r.DistTag,
	})
	if err != nil {
		return err
	}
	return fe.OrNil()
}

// Create persists a new release. The short name defaults to the slug of the long name.
func (s *releaseService) Create(r *models.Release) error {
	if err := prepareRelease(r); err != nil {
		return err
	}

	if err := s.releaseRepository.Create(nil, r); err != nil {
		if database.IsDuplicateKeyError(err) {
			return fmt.Errorf("release %s: %w", r.LongName, shared.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

// Import registers every release in one batch. Releases which already exist are skipped,
// so importing the same file twice is harmless. Nothing is written if one release is invalid.
func (s *releaseService) Import(releases []models.Release) error {
	for i := range releases {
		if err := prepareRelease(&releases[i]); err != nil {
			return fmt.Errorf("release %q: %w", releases[i].LongName, err)
		}
	}
	return s.releaseRepository.CreateBatch(nil, releases)
}
