package main

import (
	"os"

	"github.com/spf13/cobra"

	"melodia/internal/interfaces/cli/migrate"
	"melodia/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "melodia",
		Short: "Melodia - AI music studio backend",
		Long:  `Melodia is the backend for an AI-assisted music studio: song marketplace, practice tracking, AI generation, and subscription entitlements.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
