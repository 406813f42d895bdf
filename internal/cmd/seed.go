package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safar/go-bookstore/internal/config"
	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/seed"
)

var seedCfg = seed.DefaultConfig()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe and repopulate the database with sample data",
	Long: `Delete all existing rows and generate a fresh, referentially
consistent data set: users, catalog, carts, orders with payments, and
reviews with votes. Every generated account shares one password.

Intended for development and demo databases only.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCfg.NumUsers, "users", seedCfg.NumUsers, "number of customer accounts to create")
	seedCmd.Flags().IntVar(&seedCfg.NumOrders, "orders", seedCfg.NumOrders, "number of orders to create")
	seedCmd.Flags().IntVar(&seedCfg.MaxItemsPerOrder, "max-items", seedCfg.MaxItemsPerOrder, "maximum line items per order")
	seedCmd.Flags().IntVar(&seedCfg.NumRatings, "ratings", seedCfg.NumRatings, "number of review attempts to make")
	seedCmd.Flags().StringVar(&seedCfg.Password, "password", seedCfg.Password, "shared password for every generated account")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	summary, err := seed.Run(cmd.Context(), db, seedCfg)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	summary.Log()
	return nil
}
