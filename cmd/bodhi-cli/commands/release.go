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

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/models"
	"github.com/l3montree-dev/bodhi/database/repositories"
	"github.com/l3montree-dev/bodhi/services"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewReleaseCommand() *cobra.Command {
	release := cobra.Command{
		Use:   "release",
		Short: "Manage releases updates can be filed against",
	}

	release.AddCommand(newReleaseCreateCommand(), newReleaseListCommand(), newReleaseImportCommand())
	return &release
}

func newReleaseCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new release",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, pool, err := database.Factory()
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer pool.Close()

			r := models.Release{}
			r.Name, _ = cmd.Flags().GetString("name")
			r.LongName, _ = cmd.Flags().GetString("long-name")
			r.IDPrefix, _ = cmd.Flags().GetString("id-prefix")
			r.DistTag, _ = cmd.Flags().GetString("dist-tag")

			s := services.NewReleaseService(repositories.NewReleaseRepository(db))
			if err := s.Create(&r); err != nil {
				return err
			}
			slog.Info("release created", "name", r.Name, "longName", r.LongName)
			return nil
		},
	}

	cmd.Flags().String("name", "", "short name, derived from the long name when empty")
	cmd.Flags().String("long-name", "", "human readable name, e.g. \"Fedora 7\"")
	cmd.Flags().String("id-prefix", "FEDORA", "prefix of update identifiers")
	cmd.Flags().String("dist-tag", "", "koji dist tag, e.g. dist-fc7")
	return cmd
}

func newReleaseListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all releases",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, pool, err := database.Factory()
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer pool.Close()

			releases, err := services.NewReleaseService(repositories.NewReleaseRepository(db)).List()
			if err != nil {
				return err
			}
			renderReleases(cmd.OutOrStdout(), releases)
			return nil
		},
	}
}

func renderReleases(w io.Writer, releases []models.Release) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Long Name", "ID Prefix", "Dist Tag"})
	for _, r := range releases {
		tw.AppendRow(table.Row{text.Bold.Sprint(r.Name), r.LongName, r.IDPrefix, r.DistTag})
	}
	tw.AppendFooter(table.Row{"", "", "Total", len(releases)})
	tw.Render()
}

// releaseFile is the yaml document accepted by release import:
//
//	releases:
//	  - longName: Fedora 7
//	    name: fc7
//	    idPrefix: FEDORA
//	    distTag: dist-fc7
type releaseFile struct {
	Releases []struct {
		Name     string `yaml:"name"`
		LongName string `yaml:"longName"`
		IDPrefix string `yaml:"idPrefix"`
		DistTag  string `yaml:"distTag"`
	} `yaml:"releases"`
}

func parseReleaseFile(r io.Reader) ([]models.Release, error) {
	var f releaseFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("could not parse release file: %w", err)
	}

	releases := make([]models.Release, 0, len(f.Releases))
	for _, r := range f.Releases {
		if r.IDPrefix == "" {
			r.IDPrefix = "FEDORA"
		}
		releases = append(releases, models.Release{
			Name:     r.Name,
			LongName: r.LongName,
			IDPrefix: r.IDPrefix,
			DistTag:  r.DistTag,
		})
	}
	return releases, nil
}

func newReleaseImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Register every release listed in a yaml file, skipping existing ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			releases, err := parseReleaseFile(f)
			if err != nil {
				return err
			}

			db, pool, err := database.Factory()
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer pool.Close()

			if err := services.NewReleaseService(repositories.NewReleaseRepository(db)).Import(releases); err != nil {
				return fmt.Errorf("could not import releases: %w", err)
			}
			slog.Info("releases imported", "file", args[0], "count", len(releases))
			return nil
		},
	}
}
