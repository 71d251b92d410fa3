package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func flushRedisSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush-redis-sessions",
		Short: "Delete every session key in the configured Redis namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := newRedisOperator(ctx)
			if err != nil {
				return err
			}

			deleted, err := op.FlushRedis(ctx)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "flushed redis sessions", "deleted", deleted)
			return nil
		},
	}
}
