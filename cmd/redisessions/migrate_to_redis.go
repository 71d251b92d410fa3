package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func migrateSessionsToRedisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-sessions-to-redis",
		Short: "Copy every relational session record back into Redis",
		Long: `Writes each session row under its namespaced Redis key with a TTL
derived from the record's expiry date. Records that already expired
are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, cleanup, err := newOperator(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := op.MigrateToRedis(ctx)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "migrated sessions to redis",
				"migrated", summary.Migrated,
				"skipped", summary.Skipped,
				"failed", summary.Failed)
			return nil
		},
	}
}
