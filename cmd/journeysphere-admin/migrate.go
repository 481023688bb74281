package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/database/migrations"
)

var errNotPostgres = errors.New("migrations apply to the postgres driver only; sqlite and mongo prepare their schema on startup")

func migrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
		Long: `Apply or roll back the embedded postgres migrations.

Examples:
  journeysphere-admin migrate up
  journeysphere-admin migrate version
  journeysphere-admin migrate goto 1
  journeysphere-admin migrate down`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(e)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runner.MigrateUp()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(e)
			if err != nil {
				return err
			}
			defer runner.Close()
			if err := runner.MigrateDown(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All migrations rolled back")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "goto VERSION",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || version == 0 {
				return fmt.Errorf("invalid version %q: use a positive number, or migrate down to roll back everything", args[0])
			}

			runner, err := newRunner(e)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runner.MigrateTo(uint(version))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(e)
			if err != nil {
				return err
			}
			defer runner.Close()

			version, dirty, err := runner.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		},
	})

	return cmd
}

func newRunner(e *env) (*migrations.Runner, error) {
	if e.cfg.Database.Driver != config.DriverPostgres {
		return nil, errNotPostgres
	}
	return migrations.NewRunner(e.cfg.Database.DSN, e.log), nil
}
