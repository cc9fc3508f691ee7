package config

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenDB opens the bun handle for the configured database target: sqlite for
// development and test, postgres for production.
func OpenDB(cfg *Config) (*bun.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN())))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "sqlite":
		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("config: open sqlite: %w", err)
		}
		// sqlite handles a single writer; keep the pool at one connection so
		// in-memory databases are not silently duplicated.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("config: unsupported database driver %q", cfg.Database.Driver)
	}
}
