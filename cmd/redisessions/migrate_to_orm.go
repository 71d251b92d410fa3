package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func migrateSessionsToORMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-sessions-to-orm",
		Short: "Copy every Redis session into the relational session table",
		Long: `Scans the configured namespace and upserts one row per session into
the relational session table. Re-running is safe: rows are keyed by
session key. Sessions whose payload fails to decode are skipped and
counted, they never abort the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, cleanup, err := newOperator(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := op.MigrateToPostgres(ctx)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "migrated sessions to the relational store",
				"migrated", summary.Migrated,
				"skipped", summary.Skipped,
				"failed", summary.Failed)
			return nil
		},
	}
}
