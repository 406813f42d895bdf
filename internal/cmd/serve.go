package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safar/go-bookstore/internal/config"
	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/email"
	"github.com/safar/go-bookstore/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bookstore API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	mailer := email.NewResendMailer(cfg.Email)

	srv, err := server.NewServer(db, cfg, mailer)
	if err != nil {
		return fmt.Errorf("set up server: %w", err)
	}

	fmt.Printf("Starting server on :%s...\n", cfg.Server.Port)
	if err := srv.Start(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
