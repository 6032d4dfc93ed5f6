package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq" // database/sql driver used by goose
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const driverName = "postgres"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SetupPostgres brings the schema at url up to date. It runs on its own
// short-lived connection before the application pool starts serving.
func SetupPostgres(ctx context.Context, url string, logger *zap.Logger) error {
	conn, err := sql.Open(driverName, url)
	if err != nil {
		return fmt.Errorf("can not open migration connection: %w", err)
	}
	defer conn.Close()

	if err = conn.PingContext(ctx); err != nil {
		return fmt.Errorf("can not reach postgres for migrations: %w", err)
	}

	return migrate(ctx, conn, logger)
}

func migrate(ctx context.Context, conn *sql.DB, logger *zap.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(driverName); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return fmt.Errorf("can not apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("database schema is up to date", zap.Int64("version", version))
	}

	return nil
}
