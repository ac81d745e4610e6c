// Package dbx opens the wallet's record store, applies schema migrations and
// translates driver errors into the sentinels from internal/common.
//
// The store location is a single DSN:
//
//	dkcards.db, ./data/dkcards.db      sqlite file (parent dir is created)
//	:memory:, file:x?mode=memory       sqlite in memory (one connection)
//	postgres://..., postgresql://...   PostgreSQL through pgx
//
// Queries go through bun so repositories are written once for both dialects.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/dkcards/internal/common"
	"github.com/dmitrijs2005/dkcards/internal/filex"
	"github.com/dmitrijs2005/dkcards/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// sqliteDSN prepares a sqlite DSN: plain file paths get their directory
// created and the busy-timeout/WAL pragmas appended.
func sqliteDSN(dsn string) (string, error) {
	if isMemoryDSN(dsn) || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, "?") {
		return dsn, nil
	}
	if err := filex.EnsureParentDir(dsn); err != nil {
		return "", err
	}
	return dsn + "?" + sqlitePragmas, nil
}

// Open connects to the store named by dsn and verifies it is reachable.
// Connection failures wrap common.ErrStoreUnavailable.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	var db *bun.DB

	if IsPostgresDSN(dsn) {
		sqlDB, err := sqlOpen("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: open: %w", common.ErrStoreUnavailable, err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	} else {
		prepared, err := sqliteDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}
		sqlDB, err := sqlOpen("sqlite", prepared)
		if err != nil {
			return nil, fmt.Errorf("%w: open: %w", common.ErrStoreUnavailable, err)
		}
		// Every connection to ":memory:" is a separate database.
		if isMemoryDSN(dsn) {
			sqlDB.SetMaxOpenConns(1)
			sqlDB.SetMaxIdleConns(1)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", common.ErrStoreUnavailable, err)
	}
	return db, nil
}

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Migrate applies the embedded migrations for the store's dialect.
func Migrate(ctx context.Context, db *bun.DB) error {
	gooseDialect, dir := "sqlite3", "sqlite"
	if db.Dialect().Name() == dialect.PG {
		gooseDialect, dir = "postgres", "postgres"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("%w: migrate: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}
