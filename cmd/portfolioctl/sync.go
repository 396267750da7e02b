package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kamar-Folarin/portfolio-api/internal/github"
	"github.com/Kamar-Folarin/portfolio-api/internal/models"
)

func newSyncCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import GitHub repositories as projects",
		Long: `Run one project sync for GITHUB_USERNAME and print the summary as JSON.

Without --limit the GITHUB_PROJECTS_LIMIT cap applies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("limit") && limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client, err := github.NewGitHubClient(&a.cfg.GitHubConfig, a.logger)
			if err != nil {
				return err
			}
			syncService := github.NewSyncService(client, store, &a.cfg.GitHubConfig, &a.cfg.SyncConfig, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runSync(ctx, syncService, limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of projects to import")

	return cmd
}

func runSync(ctx context.Context, syncService github.SyncService, limit int, out io.Writer) error {
	summary, err := syncService.Sync(ctx, limit)
	if err != nil {
		return err
	}
	return writeSummary(out, summary)
}

func writeSummary(out io.Writer, summary *models.SyncSummary) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
