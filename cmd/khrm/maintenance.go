// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"khrm/internal/adminmenu"
	"khrm/internal/database"
	"khrm/internal/handlers"
	"khrm/internal/jobs"
	"khrm/internal/models"
	"khrm/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database and job queue migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := database.Version(db)
		if err != nil {
			return err
		}

		pool, err := database.ConnectPool(cmd.Context(), cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect job pool: %w", err)
		}
		defer pool.Close()
		if err := jobs.Migrate(cmd.Context(), pool); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
		return nil
	},
}

var (
	flagAdminEmail    string
	flagAdminPassword string
	flagAllow         []string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the break-glass admin and singleton records if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.IsDev() && flagAdminPassword == database.DefaultSeed.AdminPassword {
			return fmt.Errorf("--admin-password is required outside development")
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return database.Seed(db, database.SeedOptions{
			AdminEmail:    flagAdminEmail,
			AdminPassword: flagAdminPassword,
			AllowedEmails: flagAllow,
		})
	},
}

var allowEmailCmd = &cobra.Command{
	Use:   "allow-email",
	Short: "Manage the Google sign-in allow-list",
}

var allowEmailAddCmd = &cobra.Command{
	Use:   "add EMAIL...",
	Short: "Allow addresses to sign in with Google",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAllowList(func(s *store.AllowedEmailStore) error {
			for _, email := range args {
				if !strings.Contains(email, "@") {
					return fmt.Errorf("%q is not an email address", email)
				}
				if _, err := s.Add(cmd.Context(), email); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "allowed %s\n", strings.ToLower(email))
			}
			return nil
		})
	},
}

var allowEmailRemoveCmd = &cobra.Command{
	Use:   "remove EMAIL...",
	Short: "Revoke Google sign-in for addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAllowList(func(s *store.AllowedEmailStore) error {
			for _, email := range args {
				removed, err := s.Remove(cmd.Context(), email)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s was not on the list\n", email)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", email)
			}
			return nil
		})
	},
}

var allowEmailListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the allow-list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAllowList(func(s *store.AllowedEmailStore) error {
			emails, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range emails {
				fmt.Fprintln(cmd.OutOrStdout(), e.Email)
			}
			return nil
		})
	},
}

func withAllowList(fn func(*store.AllowedEmailStore) error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(store.NewAllowedEmailStore(db))
}

var flagMenuRole string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the back-office sidebar as JSON",
	Long: `Print the back-office sidebar projected for a role, using
ADMIN_MENU_FILE when set and the built-in menu otherwise. Useful to check
a menu file before deploying it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role := models.Role(flagMenuRole)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", flagMenuRole)
		}
		menu, err := adminmenu.Load(cfg.AdminMenuFile)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(menu.Project(handlers.MenuEntities(role)))
	},
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&flagAdminEmail, "admin-email", database.DefaultSeed.AdminEmail, "break-glass admin login")
	f.StringVar(&flagAdminPassword, "admin-password", database.DefaultSeed.AdminPassword, "break-glass admin password")
	f.StringSliceVar(&flagAllow, "allow", nil, "addresses to add to the Google sign-in allow-list")

	allowEmailCmd.AddCommand(allowEmailAddCmd, allowEmailRemoveCmd, allowEmailListCmd)

	menuCmd.Flags().StringVar(&flagMenuRole, "role", string(models.RoleAdmin), "role to project the menu for")
}
