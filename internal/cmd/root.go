// Package cmd holds the bookstore CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookstore",
	Short: "Bookstore - online book shop backend",
	Long: `Bookstore is the backend for an online book shop: a REST API over
PostgreSQL with customer accounts, carts, orders and reviews, plus an
admin moderation surface.

Use 'serve' to run the API, 'migrate' to manage the schema and 'seed'
to populate a development database with realistic data.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
