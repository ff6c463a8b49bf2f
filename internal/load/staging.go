package load

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/shengyushen/spark-snowflake/internal/ddl"
	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// stagingSuffix separates the target name from the random collision-avoidance
// integer in staging table names.
const stagingSuffix = "_staging_"

// ExistsFunc reports whether a table currently exists on the connection.
type ExistsFunc func(ctx context.Context, table string) bool

// Action runs one full load attempt against the given table name.
type Action func(ctx context.Context, table string) error

// StagingLoader achieves atomic table replacement: the load action runs
// against a throwaway staging table, which is then promoted over the target
// in a single warehouse primitive. The staging table is guaranteed dropped
// by the end of the attempt on every exit path.
type StagingLoader struct {
	conn    Execer
	exists  ExistsFunc
	logger  *slog.Logger
	randInt func() int64 // staging suffix source, overridable in tests
}

// NewStagingLoader creates a StagingLoader over conn. exists probes the
// target before promotion to choose between SWAP and RENAME.
func NewStagingLoader(conn Execer, exists ExistsFunc, logger *slog.Logger) *StagingLoader {
	return &StagingLoader{
		conn:    conn,
		exists:  exists,
		logger:  logger,
		randInt: func() int64 { return rand.Int63() },
	}
}

// LoadWithAtomicReplace runs action against a randomly suffixed staging name,
// then promotes the staging table: an atomic SWAP when the target already
// exists (the target is never absent), a RENAME otherwise. The staging table
// is dropped on every exit path; a cleanup failure is logged and never
// replaces the original error.
func (l *StagingLoader) LoadWithAtomicReplace(ctx context.Context, target string, action Action) error {
	staging := fmt.Sprintf("%s%s%d", target, stagingSuffix, l.randInt())

	defer func() {
		// After a SWAP the staging name holds the previous target contents,
		// so the drop is required on success as well.
		stmt, err := ddl.DropTableIfExists(staging)
		if err == nil {
			_, err = l.conn.ExecContext(ctx, stmt)
		}
		if err != nil {
			l.logger.Warn("staging table cleanup failed", "table", staging, "error", err)
		}
	}()

	if err := action(ctx, staging); err != nil {
		return err
	}

	var stmt string
	var err error
	if l.exists(ctx, target) {
		stmt, err = ddl.SwapWith(target, staging)
	} else {
		stmt, err = ddl.RenameTo(staging, target)
	}
	if err != nil {
		return domain.ErrSwap(stmt, err)
	}

	l.logger.Debug("promoting staging table", "statement", stmt)
	if _, err := l.conn.ExecContext(ctx, stmt); err != nil {
		return domain.ErrSwap(stmt, err)
	}
	return nil
}
