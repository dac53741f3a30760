package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clientdesk/clientdesk/internal/interfaces/cli/migrate"
	"github.com/clientdesk/clientdesk/internal/interfaces/cli/server"
	"github.com/clientdesk/clientdesk/internal/interfaces/cli/sweep"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clientdesk",
		Short: "Client Desk - support tickets for client portals",
		Long:  `Client Desk serves the ticket API and ships the migration and maintenance commands that go with it.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
