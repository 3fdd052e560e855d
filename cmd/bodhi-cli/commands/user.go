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
	"log/slog"

	"github.com/l3montree-dev/bodhi/database"
	"github.com/l3montree-dev/bodhi/database/repositories"
	"github.com/l3montree-dev/bodhi/services"
	"github.com/spf13/cobra"
)

func NewUserCommand() *cobra.Command {
	user := cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	user.AddCommand(newUserCreateCommand())
	return &user
}

func newUserCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user who can log in and submit updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, pool, err := database.Factory()
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer pool.Close()

			displayName, _ := cmd.Flags().GetString("display-name")
			password, _ := cmd.Flags().GetString("password")

			s := services.NewAuthService(repositories.NewUserRepository(db), repositories.NewSessionRepository(db), database.NewMemoryBroker())
			user, err := s.CreateUser(args[0], displayName, password)
			if err != nil {
				return err
			}
			slog.Info("user created", "user", user.UserName, "id", user.ID)
			return nil
		},
	}

	cmd.Flags().String("display-name", "", "name shown instead of the user name")
	cmd.Flags().String("password", "", "password of the user")
	cmd.MarkFlagRequired("password") // nolint: errcheck
	return cmd
}
