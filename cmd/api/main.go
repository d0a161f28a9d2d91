package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/statefacts/core/cmd/api/commands"
)

// @title US States API
// @version 1.0
// @description Reference data for the fifty US states with user-maintained fun facts

// @contact.name StateFacts
// @contact.url https://github.com/statefacts/core

// @license.name MIT
// @license.url https://github.com/statefacts/core/blob/main/LICENSE

// @host localhost:1800
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:   "statefacts",
		Short: "US States API server",
		Long:  `StateFacts serves reference data for the fifty US states and lets clients keep a list of fun facts per state.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewStatesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
