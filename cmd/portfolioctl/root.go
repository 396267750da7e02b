package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/portfolio-api/internal/config"
	"github.com/Kamar-Folarin/portfolio-api/internal/db"
)

// app carries what every subcommand needs once the root has loaded config
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Operator tool for the portfolio API",
		Long: `portfolioctl runs maintenance tasks against the portfolio database.

Examples:
  portfolioctl migrate             # Apply pending migrations
  portfolioctl sync                # Import GitHub repositories as projects
  portfolioctl sync --limit 10     # Import at most 10 projects`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = config.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newSyncCmd(a))

	return rootCmd
}

func (a *app) openStore() (*db.PostgresStore, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	conn, err := db.Open(a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db.NewPostgresStore(conn), nil
}
