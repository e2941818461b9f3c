// Package main is the administration CLI for the renewals backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/renewals/backend/cmd/adm/commands"
	"github.com/pageza/renewals/backend/config"
	"github.com/pageza/renewals/backend/internal/database"
	"github.com/pageza/renewals/backend/internal/logging"
	"github.com/pageza/renewals/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The admin tool only reports errors
	log := logging.New(config.GetEnvironment(), "error")
	defer func() { _ = log.Sync() }()

	db, err := database.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "Renewals administration tool",
		Long: `Renewals administration tool

Commands for schema migrations and user accounts.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.MigrateCommands(db, cfg.DSN(), log))
	rootCmd.AddCommand(commands.UserCommands(service.NewUserService(db)))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
