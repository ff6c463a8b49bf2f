// Package db wraps the SQL driver used to reach the warehouse: connection
// acquisition with a scoped release, and table existence probing.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/shengyushen/spark-snowflake/internal/ddl"
)

// Querier is the query subset of *sql.Conn used by TableExists.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Connect opens the warehouse database and acquires the single connection a
// save operation runs on. The returned release function closes both and is
// safe to call more than once; only the first call has effect.
func Connect(ctx context.Context, driver, dsn string) (*sql.Conn, func(), error) {
	pool, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	conn, err := pool.Conn(ctx)
	if err != nil {
		_ = pool.Close()
		return nil, nil, fmt.Errorf("acquire connection: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = conn.Close()
			_ = pool.Close()
		})
	}
	return conn, release, nil
}

// TableExists probes for a table by selecting one row from it. Any failure
// (including a missing table) reports false, mirroring the probe-by-query
// convention of warehouse JDBC wrappers where no portable catalog lookup
// exists.
func TableExists(ctx context.Context, q Querier, table string) bool {
	if err := ddl.ValidateTableName(table); err != nil {
		return false
	}
	rows, err := q.QueryContext(ctx, fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", ddl.QuoteTableName(table)))
	if err != nil {
		return false
	}
	defer rows.Close() //nolint:errcheck
	return rows.Err() == nil
}
