// Package databasetest opens a migrated, empty Postgres database for
// integration tests. Tests are skipped unless STORAGE_DRIVER=postgres and the
// usual DB_* variables point at a disposable database.
package databasetest

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/pesio-ai/be-hr-leave/internal/config"
	"github.com/pesio-ai/be-hr-leave/internal/database"
)

// lockKey serializes test packages that share the database.
const lockKey = 0x6c65617665

// Open connects, applies the schema and empties every table. The returned
// DB is closed when tb finishes.
func Open(tb testing.TB) *database.DB {
	tb.Helper()

	cfg, err := config.Load()
	if err != nil {
		tb.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		tb.Skip("set STORAGE_DRIVER=postgres and DB_* to run Postgres integration tests")
	}

	dbCfg := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: 4,
	}
	ctx := context.Background()

	// go test runs packages in parallel; hold a session lock for the test.
	lockConn, err := pgx.Connect(ctx, dbCfg.DSN())
	if err != nil {
		tb.Fatalf("connect for lock: %v", err)
	}
	if _, err := lockConn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		_ = lockConn.Close(ctx)
		tb.Fatalf("acquire advisory lock: %v", err)
	}
	tb.Cleanup(func() {
		_, _ = lockConn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		_ = lockConn.Close(context.Background())
	})

	db, err := database.New(ctx, dbCfg)
	if err != nil {
		tb.Fatalf("open database: %v", err)
	}
	tb.Cleanup(db.Close)

	if err := db.Migrate(ctx); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE leave_requests, directory_users"); err != nil {
		tb.Fatalf("truncate: %v", err)
	}
	return db
}
