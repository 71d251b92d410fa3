package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func flushORMSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush-orm-sessions",
		Short: "Delete every row from the relational session table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, cleanup, err := newOperator(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			deleted, err := op.FlushPostgres(ctx)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "flushed relational sessions", "deleted", deleted)
			return nil
		},
	}
}
