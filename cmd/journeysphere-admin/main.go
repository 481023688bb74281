package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

var Version = "dev"

// env is loaded once per invocation before any subcommand runs.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "journeysphere-admin",
		Short:         "Operator tools for the JourneySphere booking service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			e.cfg = config.Load()
			e.log = logger.NewLoggerWithWriter(cmd.ErrOrStderr())
			e.log.SetLevel(logger.ParseLevel(e.cfg.Log.Level))
		},
	}

	rootCmd.AddCommand(migrateCmd(e))
	rootCmd.AddCommand(createAdminCmd(e))
	rootCmd.AddCommand(setRoleCmd(e))
	rootCmd.AddCommand(eventsCmd(e))

	return rootCmd
}
