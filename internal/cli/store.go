package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/config"
	"github.com/Tocard/DiscordDofusBotLGB/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const startupTimeout = 5 * time.Second

// openStore connects, pings and migrates the database.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, []string, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(startupCtx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(startupCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	applied, err := migrations.Apply(startupCtx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	return pool, applied, nil
}
