package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/redisessions/pkg/config"
	"github.com/dmitrymomot/redisessions/pkg/sessionpg"
)

func migrateSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-schema",
		Short: "Apply the relational session table schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var cfg sessionpg.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}

			pool, err := sessionpg.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			return sessionpg.Migrate(ctx, pool, cfg, slog.Default())
		},
	}
}
