package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/redisessions/pkg/config"
	"github.com/dmitrymomot/redisessions/pkg/logger"
	"github.com/dmitrymomot/redisessions/pkg/maintenance"
	"github.com/dmitrymomot/redisessions/pkg/redisconn"
	"github.com/dmitrymomot/redisessions/pkg/serializer"
	"github.com/dmitrymomot/redisessions/pkg/sessionpg"
	"github.com/dmitrymomot/redisessions/pkg/sessions"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	slog.SetDefault(logger.New(logCfg, os.Stderr))

	rootCmd := &cobra.Command{
		Use:   "redisessions",
		Short: "Operator commands for the Redis session backend",
		Long: `One-shot maintenance operations over the session namespace:
flushing all sessions and migrating them between Redis and the
relational session table.

Configuration comes from the SESSION_REDIS_* / SESSION_PG_* environment
variables (or a .env file in the working directory).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		flushRedisSessionsCmd(),
		migrateSessionsToORMCmd(),
		migrateSessionsToRedisCmd(),
		flushORMSessionsCmd(),
		migrateSchemaCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// newRedisOperator wires an Operator for Redis-only commands: config load,
// connection resolution and a ping preflight so a misconfigured target fails
// before any destructive work starts.
func newRedisOperator(ctx context.Context) (*maintenance.Operator, error) {
	op, _, err := newOperator(ctx, false)
	return op, err
}

func newOperator(ctx context.Context, withPG bool) (*maintenance.Operator, func(), error) {
	var cfg sessions.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	desc, err := redisconn.Resolve(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	client := redisconn.Client(desc)

	if err := redisconn.Healthcheck(client)(ctx); err != nil {
		return nil, nil, err
	}

	codec, err := serializer.New(cfg.Serializer)
	if err != nil {
		return nil, nil, err
	}

	var store maintenance.RecordStore
	cleanup := func() {}
	if withPG {
		pool, err := connectPG(ctx)
		if err != nil {
			return nil, nil, err
		}
		store = sessionpg.NewRepository(pool)
		cleanup = pool.Close
	}

	opts := []maintenance.Option{}
	if cfg.Expire > 0 {
		opts = append(opts, maintenance.WithRecordTTL(cfg.Expire))
	}

	return maintenance.New(client, cfg.Namespace(), codec, store, opts...), cleanup, nil
}

func connectPG(ctx context.Context) (*pgxpool.Pool, error) {
	var cfg sessionpg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return sessionpg.Connect(ctx, cfg)
}
