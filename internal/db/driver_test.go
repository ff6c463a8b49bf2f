package db

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()

	conn, release, err := Connect(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	require.NotNil(t, conn)

	_, err = conn.ExecContext(ctx, `CREATE TABLE t (id INTEGER)`)
	require.NoError(t, err)

	// Release is idempotent.
	release()
	release()
}

func TestConnectUnknownDriver(t *testing.T) {
	_, _, err := Connect(context.Background(), "no-such-driver", "dsn")
	require.Error(t, err)
}

func TestTableExists(t *testing.T) {
	ctx := context.Background()
	conn, release, err := Connect(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	defer release()

	assert.False(t, TableExists(ctx, conn, "sales"))

	_, err = conn.ExecContext(ctx, `CREATE TABLE sales (id INTEGER)`)
	require.NoError(t, err)
	assert.True(t, TableExists(ctx, conn, "sales"))

	// The probe works on empty tables too.
	_, err = conn.ExecContext(ctx, `CREATE TABLE empty_table (id INTEGER)`)
	require.NoError(t, err)
	assert.True(t, TableExists(ctx, conn, "empty_table"))

	// Invalid names report false rather than reaching the warehouse.
	assert.False(t, TableExists(ctx, conn, "sales; DROP TABLE x"))
	assert.False(t, TableExists(ctx, conn, ""))
}
