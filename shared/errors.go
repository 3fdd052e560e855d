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

package shared

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	MessageInvalidCredentials = "The credentials you supplied were not correct or did not grant access to this resource."
	MessageUnauthenticated    = "You must provide your credentials before accessing this resource."
	MessageInvalidBuildFormat = "Invalid package name; must be in package-version-release format"
	MessageInvalidBug         = "Invalid bug number; bugs must be whitespace separated integers"
	MessageDuplicateBuild     = "Multiple builds of the same package"
	MessageRequired           = "Please enter a value"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidBuildFormat = errors.New("invalid build format")
	ErrUnknownRelease     = errors.New("unknown release")
	ErrInvalidType        = errors.New("invalid update type")
	ErrInvalidBug         = errors.New("invalid bug")
	ErrAlreadyExists      = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidValue       = errors.New("invalid value")
)

// OneOfMessage renders the message shown for a value outside of a closed set:
// Value must be one of: bugfix; enhancement; security (not 'REGRESSION!')
func OneOfMessage(valid []string, got string) string {
	return fmt.Sprintf("Value must be one of: %s (not '%s')", strings.Join(valid, "; "), got)
}

// FieldError is a validation failure scoped to a single form field.
type FieldError struct {
	Field   string
	Message string
	// Kind is one of the sentinel errors above and can be matched with errors.Is.
	Kind error
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e FieldError) Unwrap() error {
	return e.Kind
}

// FieldErrors collects all field errors of a single request.
// Only the first error per field is kept.
type FieldErrors map[string]FieldError

func (fe FieldErrors) Add(field, message string, kind error) {
	if _, ok := fe[field]; ok {
		return
	}
	fe[field] = FieldError{Field: field, Message: message, Kind: kind}
}

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, field := range slices.Sorted(maps.Keys(fe)) {
		msgs = append(msgs, fe[field].Error())
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Unwrap exposes the kinds of every field error to errors.Is.
func (fe FieldErrors) Unwrap() []error {
	errs := make([]error, 0, len(fe))
	for _, field := range slices.Sorted(maps.Keys(fe)) {
		errs = append(errs, fe[field])
	}
	return errs
}

// Messages returns field -> message for the response body.
func (fe FieldErrors) Messages() map[string]string {
	m := make(map[string]string, len(fe))
	for field, e := range fe {
		m[field] = e.Message
	}
	return m
}

func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
