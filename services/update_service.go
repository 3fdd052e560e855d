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
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/dtos"
	"github.com/l3montree-dev/bodhi/monitoring"
	"github.com/l3montree-dev/bodhi/normalize"
	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/utils"
	"gorm.io/gorm"
)

type updateService struct {
	updateRepository  shared.UpdateRepository
	releaseRepository shared.ReleaseRepository
}

func NewUpdateService(updateRepository shared.UpdateRepository, releaseRepository shared.ReleaseRepository) *updateService {
	return &updateService{
		updateRepository:  updateRepository,
		releaseRepository: releaseRepository,
	}
}

// parsedForm is an update submission after every field passed validation.
type parsedForm struct {
	builds  []normalize.NVR
	release models.Release
	typ     models.UpdateType
	bugs    []int
	cves    []string
	notes   string
}

func (s *updateService) Submit(submitter models.User, form dtos.UpdateForm) (models.PackageUpdate, error) {
	start := time.Now()
	defer func() {
		monitoring.UpdateSubmitDuration.Observe(time.Since(start).Seconds())
	}()

	parsed, err := s.parseForm(form)
	if err != nil {
		recordRejection(err)
		return models.PackageUpdate{}, err
	}

	update := models.PackageUpdate{
		Title:       title(parsed.builds),
		Type:        models.ClassifyUpdateType(parsed.typ, parsed.cves),
		Notes:       parsed.notes,
		ReleaseID:   parsed.release.ID,
		SubmitterID: submitter.ID,
	}
	for i, nvr := range parsed.builds {
		update.Builds = append(update.Builds, models.Build{NVR: nvr.String(), Package: nvr.Name, Position: i})
	}
	for i, bug := range parsed.bugs {
		update.Bugs = append(update.Bugs, models.Bug{BugID: bug, Position: i})
	}
	for i, cve := range parsed.cves {
		update.CVEs = append(update.CVEs, models.CVE{CVEID: cve, Position: i})
	}

	var created models.PackageUpdate
	err = s.updateRepository.Transaction(func(tx shared.DB) error {
		existing, err := s.updateRepository.FindBuildsByNVR(tx, utils.Map(update.Builds, func(b models.Build) string {
			return b.NVR
		}))
		if err != nil {
			return fmt.Errorf("could not check for existing builds: %w", err)
		}
		if len(existing) > 0 {
			fe := shared.FieldErrors{}
			fe.Add("builds", fmt.Sprintf("Update for %s already exists", existing[0].NVR), shared.ErrAlreadyExists)
			return fe
		}

		if err := s.checkNewerBuilds(tx, parsed); err != nil {
			return err
		}

		// release and submitter already exist and must not be upserted
		if err := s.updateRepository.Create(tx.Omit("Release", "Submitter"), &update); err != nil {
			if database.IsDuplicateKeyError(err) {
				fe := shared.FieldErrors{}
				fe.Add("builds", fmt.Sprintf("Update for %s already exists", update.Title), shared.ErrAlreadyExists)
				return fe
			}
			return fmt.Errorf("could not create update: %w", err)
		}

		created, err = s.updateRepository.FindByTitle(tx, update.Title)
		return err
	})
	if err != nil {
		recordRejection(err)
		return models.PackageUpdate{}, err
	}

	monitoring.UpdatesSubmittedAmount.WithLabelValues(string(created.Type)).Inc()
	slog.Info("update submitted", "title", created.Title, "type", created.Type, "release", parsed.release.Name, "submitter", submitter.UserName)
	return created, nil
}

// checkNewerBuilds rejects builds which are not newer than a build of the same
// package already submitted to the release.
func (s *updateService) checkNewerBuilds(tx shared.DB, parsed parsedForm) error {
	existing, err := s.updateRepository.FindBuildsByPackage(tx, parsed.release.ID, utils.Map(parsed.builds, func(n normalize.NVR) string {
		return n.Name
	}))
	if err != nil {
		return fmt.Errorf("could not fetch builds of release: %w", err)
	}

	fe := shared.FieldErrors{}
	for _, b := range existing {
		old, err := normalize.ParseNVR(b.NVR)
		if err != nil {
			slog.Warn("stored build is not a valid nvr", "nvr", b.NVR)
			continue
		}
		for _, nvr := range parsed.builds {
			if nvr.Name == old.Name && normalize.CompareNVR(old, nvr) >= 0 {
				fe.Add("builds", fmt.Sprintf("Newer build of %s already submitted: %s", nvr.Name, old), shared.ErrAlreadyExists)
			}
		}
	}
	return fe.OrNil()
}

// parseForm validates every field of the form and reports all field errors at once.
func (s *updateService) parseForm(form dtos.UpdateForm) (parsedForm, error) {
	// whitespace only values count as missing
	form.Builds = strings.TrimSpace(form.Builds)
	form.Release = strings.TrimSpace(form.Release)
	form.Type = strings.TrimSpace(form.Type)

	fe, err := shared.ValidateStruct(form)
	if err != nil {
		return parsedForm{}, err
	}

	parsed := parsedForm{notes: form.Notes}

	if _, ok := fe["builds"]; !ok {
		builds, err := parseBuilds(form.Builds)
		if err != nil {
			fe.Add("builds", buildErrorMessage(err), err)
		}
		parsed.builds = builds
	}

	if _, ok := fe["release"]; !ok {
		release, err := s.resolveRelease(form.Release)
		if err != nil {
			var fieldErr shared.FieldError
			if !errors.As(err, &fieldErr) {
				return parsedForm{}, err
			}
			fe.Add("release", fieldErr.Message, fieldErr.Kind)
		}
		parsed.release = release
	}

	if _, ok := fe["type"]; !ok {
		typ := models.UpdateType(form.Type)
		if !typ.Valid() {
			fe.Add("type", shared.OneOfMessage(utils.Map(models.UpdateTypes(), func(t models.UpdateType) string {
				return string(t)
			}), form.Type), shared.ErrInvalidType)
		}
		parsed.typ = typ
	}

	bugs, err := parseBugs(form.Bugs)
	if err != nil {
		fe.Add("bugs", shared.MessageInvalidBug, shared.ErrInvalidBug)
	}
	parsed.bugs = bugs
	parsed.cves = parseCVEs(form.CVEs)

	if err := fe.OrNil(); err != nil {
		return parsedForm{}, err
	}
	return parsed, nil
}

var errDuplicatePackage = fmt.Errorf("%w: multiple builds of the same package", shared.ErrInvalidBuildFormat)

func buildErrorMessage(err error) string {
	if errors.Is(err, errDuplicatePackage) {
		return shared.MessageDuplicateBuild
	}
	return shared.MessageInvalidBuildFormat
}

// parseBuilds splits the whitespace separated build list.
// Repeated identical builds are collapsed, two different builds of one package are rejected.
func parseBuilds(raw string) ([]normalize.NVR, error) {
	var builds []normalize.NVR
	seen := make(map[string]struct{})
	packages := make(map[string]struct{})
	for _, token := range strings.Fields(raw) {
		nvr, err := normalize.ParseNVR(token)
		if err != nil {
			return nil, shared.ErrInvalidBuildFormat
		}
		if _, ok := seen[nvr.String()]; ok {
			continue
		}
		if _, ok := packages[nvr.Name]; ok {
			return nil, errDuplicatePackage
		}
		seen[nvr.String()] = struct{}{}
		packages[nvr.Name] = struct{}{}
		builds = append(builds, nvr)
	}
	if len(builds) == 0 {
		return nil, shared.ErrInvalidBuildFormat
	}
	return builds, nil
}

func parseBugs(raw string) ([]int, error) {
	var bugs []int
	for _, token := range strings.Fields(raw) {
		// bug numbers are commonly written as #1234
		bug, err := strconv.Atoi(strings.TrimPrefix(token, "#"))
		if err != nil || bug <= 0 {
			return nil, shared.ErrInvalidBug
		}
		if slices.Contains(bugs, bug) {
			continue
		}
		bugs = append(bugs, bug)
	}
	return bugs, nil
}

// parseCVEs attaches every token as submitted, repeated ones included.
func parseCVEs(raw string) []string {
	return strings.Fields(raw)
}

// resolveRelease maps the submitted long name to a release.
// An unknown name fails with a FieldError listing every valid long name.
func (s *updateService) resolveRelease(longName string) (models.Release, error) {
	release, err := s.releaseRepository.FindByLongName(longName)
	if err == nil {
		return release, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Release{}, fmt.Errorf("could not fetch release: %w", err)
	}

	releases, err := s.releaseRepository.AllOrderedByName()
	if err != nil {
		return models.Release{}, fmt.Errorf("could not fetch releases: %w", err)
	}
	return models.Release{}, shared.FieldError{
		Field: "release",
		Message: shared.OneOfMessage(utils.Map(releases, func(r models.Release) string {
			return r.LongName
		}), longName),
		Kind: shared.ErrUnknownRelease,
	}
}

func title(builds []normalize.NVR) string {
	return strings.Join(utils.Map(builds, func(n normalize.NVR) string {
		return n.String()
	}), " ")
}

func recordRejection(err error) {
	var fe shared.FieldErrors
	if !errors.As(err, &fe) {
		return
	}
	for field := range fe {
		monitoring.UpdatesRejectedAmount.WithLabelValues(field).Inc()
	}
}

func (s *updateService) Read(title string) (models.PackageUpdate, error) {
	update, err := s.updateRepository.FindByTitle(nil, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PackageUpdate{}, fmt.Errorf("update %s: %w", title, shared.ErrNotFound)
		}
		return models.PackageUpdate{}, err
	}
	return update, nil
}

func (s *updateService) List(pageInfo shared.PageInfo, release string) (shared.Paged[models.PackageUpdate], error) {
	var releaseID *uuid.UUID
	if release != "" {
		rel, err := s.releaseRepository.FindByName(release)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.Paged[models.PackageUpdate]{}, fmt.Errorf("release %s: %w", release, shared.ErrNotFound)
			}
			return shared.Paged[models.PackageUpdate]{}, err
		}
		releaseID = &rel.ID
	}
	return s.updateRepository.ListPaged(pageInfo, releaseID)
}

// Delete removes the update and everything it owns. Only the submitter may do so.
func (s *updateService) Delete(requester models.User, title string) error {
	return s.updateRepository.Transaction(func(tx shared.DB) error {
		update, err := s.updateRepository.FindByTitle(tx, title)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("update %s: %w", title, shared.ErrNotFound)
			}
			return err
		}
		if update.SubmitterID != requester.ID {
			return fmt.Errorf("%s is not the submitter of %s: %w", requester.UserName, title, shared.ErrForbidden)
		}
		if err := s.updateRepository.DeleteWithChildren(tx, update.ID); err != nil {
			return err
		}
		slog.Info("update deleted", "title", title, "user", requester.UserName)
		return nil
	})
}
