// Package load sequences the warehouse DDL/DML phase of a save operation:
// the drop/create/copy/post-action sequence and the staging-table atomic
// replace protocol. All statements execute strictly sequentially on one
// connection.
package load

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shengyushen/spark-snowflake/internal/ddl"
	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// Execer is the execution subset of *sql.Conn the orchestrator runs on.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// State of the per-attempt load state machine.
type State string

const (
	StateInit        State = "init"
	StateDrop        State = "drop"
	StateCreate      State = "create"
	StateCopy        State = "copy"
	StatePostActions State = "post_actions"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Params parameterize one load attempt. The manifest is nil when the export
// produced no data, which skips the copy step.
type Params struct {
	Mode        domain.SaveMode
	Columns     []ddl.ColumnDef
	Manifest    *domain.Manifest
	Credentials domain.Credentials
	PostActions []string
}

// Orchestrator issues the Init → DropIfOverwrite → CreateTable →
// CopyIfManifest → PostActions sequence for one load attempt. Failure at any
// state transitions to Failed and surfaces; nothing retries. The connection
// is released by the caller, not here.
type Orchestrator struct {
	conn   Execer
	logger *slog.Logger
	params Params
	state  State
}

// NewOrchestrator creates an orchestrator for one load attempt.
func NewOrchestrator(conn Execer, logger *slog.Logger, params Params) *Orchestrator {
	return &Orchestrator{conn: conn, logger: logger, params: params, state: StateInit}
}

// State returns the current state of the attempt.
func (o *Orchestrator) State() State { return o.state }

// Run executes the load sequence against table.
func (o *Orchestrator) Run(ctx context.Context, table string) error {
	o.state = StateInit
	if table == "" {
		o.state = StateFailed
		return domain.ErrConfiguration("target table name is required")
	}
	if err := ddl.ValidateTableName(table); err != nil {
		o.state = StateFailed
		return domain.ErrConfiguration("invalid target table name: %v", err)
	}

	if o.params.Mode == domain.SaveModeOverwrite {
		o.state = StateDrop
		stmt, err := ddl.DropTableIfExists(table)
		if err != nil {
			return o.fail(stmt, err)
		}
		if err := o.exec(ctx, stmt, stmt); err != nil {
			return err
		}
	}

	o.state = StateCreate
	stmt, err := ddl.CreateTableIfNotExists(table, o.params.Columns)
	if err != nil {
		return o.fail(stmt, err)
	}
	if err := o.exec(ctx, stmt, stmt); err != nil {
		return err
	}

	if o.params.Manifest != nil {
		o.state = StateCopy
		opts := ddl.CopyOptions{
			Location: o.params.Manifest.Path(),
			KeyID:    o.params.Credentials.KeyID,
			Secret:   o.params.Credentials.Secret,
			Token:    o.params.Credentials.Token,
		}
		stmt, err := ddl.CopyInto(table, opts)
		if err != nil {
			return o.fail("", err)
		}
		// Diagnostics carry the statement with credentials masked.
		redacted := opts
		redacted.KeyID, redacted.Secret = "****", "****"
		if redacted.Token != "" {
			redacted.Token = "****"
		}
		logStmt, _ := ddl.CopyInto(table, redacted)
		if err := o.exec(ctx, stmt, logStmt); err != nil {
			return err
		}
	}

	o.state = StatePostActions
	for _, action := range o.params.PostActions {
		stmt := ResolvePostAction(action, table)
		if err := o.exec(ctx, stmt, stmt); err != nil {
			return err
		}
	}

	o.state = StateDone
	return nil
}

// exec runs one statement; logStmt is the credential-safe form used for
// logging and error diagnostics.
func (o *Orchestrator) exec(ctx context.Context, stmt, logStmt string) error {
	o.logger.Debug("executing statement", "state", string(o.state), "statement", logStmt)
	if _, err := o.conn.ExecContext(ctx, stmt); err != nil {
		o.state = StateFailed
		return domain.ErrLoad(logStmt, err)
	}
	return nil
}

func (o *Orchestrator) fail(stmt string, err error) error {
	o.state = StateFailed
	return domain.ErrLoad(stmt, fmt.Errorf("build statement: %w", err))
}

// ResolvePostAction substitutes the target table name for the statement's
// placeholder, if present.
func ResolvePostAction(action, table string) string {
	if strings.Contains(action, "%s") {
		return fmt.Sprintf(action, table)
	}
	return action
}
