package main

import (
	"os"

	"github.com/spf13/cobra"

	"pinkslip/internal/interfaces/cli/migrate"
	"pinkslip/internal/interfaces/cli/server"
	"pinkslip/internal/interfaces/cli/ticket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pinkslip",
		Short: "Pinkslip - drop-off ticket import and reconciliation",
		Long:  `Pinkslip reconciles spreadsheets of drop-off service ticket lines into one store, with an HTTP server, migration tools and offline import/export.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		ticket.NewImportCommand(),
		ticket.NewExportCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
