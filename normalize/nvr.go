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

package normalize

import (
	"errors"
	"regexp"
	"strings"

	rpm "github.com/knqyf263/go-rpm-version"
	"github.com/package-url/packageurl-go"
)

var ErrInvalidNVR = errors.New("invalid package name; must be in package-version-release format")

var (
	nvrNameRe    = regexp.MustCompile(`^[A-Za-z0-9_.+-]+$`)
	nvrVersionRe = regexp.MustCompile(`^[A-Za-z0-9._+~^]*[0-9][A-Za-z0-9._+~^]*$`)
	nvrReleaseRe = regexp.MustCompile(`^[A-Za-z0-9._+~^]+$`)
)

// NVR is a parsed name-version-release build identifier, e.g. TurboGears-1.0.2.2-2.fc7.
type NVR struct {
	Name    string
	Version string
	Release string
}

// ParseNVR splits s at its last two dashes. The name may itself contain dashes
// (python-sqlobject-0.8.2-1.fc7), version and release may not.
func ParseNVR(s string) (NVR, error) {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return NVR{}, ErrInvalidNVR
	}

	relIdx := strings.LastIndex(s, "-")
	if relIdx <= 0 {
		return NVR{}, ErrInvalidNVR
	}
	verIdx := strings.LastIndex(s[:relIdx], "-")
	if verIdx <= 0 {
		return NVR{}, ErrInvalidNVR
	}

	nvr := NVR{
		Name:    s[:verIdx],
		Version: s[verIdx+1 : relIdx],
		Release: s[relIdx+1:],
	}

	if !nvrNameRe.MatchString(nvr.Name) || strings.HasSuffix(nvr.Name, "-") ||
		!nvrVersionRe.MatchString(nvr.Version) ||
		!nvrReleaseRe.MatchString(nvr.Release) {
		return NVR{}, ErrInvalidNVR
	}

	return nvr, nil
}

func (n NVR) String() string {
	return n.Name + "-" + n.Version + "-" + n.Release
}

// PURL renders the build as an rpm package url in the given namespace (e.g. fedora).
func (n NVR) PURL(namespace string) string {
	return packageurl.NewPackageURL(packageurl.TypeRPM, namespace, n.Name, n.Version+"-"+n.Release, nil, "").ToString()
}

// EVR returns the rpm version-release of the build for ordering.
func (n NVR) EVR() rpm.Version {
	return rpm.NewVersion(n.Version + "-" + n.Release)
}

// CompareNVR orders builds by package name and then by rpm version-release.
func CompareNVR(a, b NVR) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	ea, eb := a.EVR(), b.EVR()
	switch {
	case ea.LessThan(eb):
		return -1
	case ea.GreaterThan(eb):
		return 1
	default:
		return 0
	}
}
