package repository

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the idempotent schema. Safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		logger.Error("failed to apply schema", "error", err)
		return err
	}
	logger.Info("database schema up to date")
	return nil
}
