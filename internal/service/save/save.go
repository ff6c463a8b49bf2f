// Package save coordinates one save operation end to end: credential
// resolution, export to the bulk store, and the sequential load phase,
// with the connection held for exactly the operation's lifetime.
package save

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shengyushen/spark-snowflake/internal/creds"
	"github.com/shengyushen/spark-snowflake/internal/db"
	"github.com/shengyushen/spark-snowflake/internal/ddl"
	"github.com/shengyushen/spark-snowflake/internal/domain"
	"github.com/shengyushen/spark-snowflake/internal/export"
	"github.com/shengyushen/spark-snowflake/internal/load"
	"github.com/shengyushen/spark-snowflake/internal/schema"
)

// Conn is the connection surface a save operation needs.
type Conn interface {
	load.Execer
	db.Querier
}

// ConnectFunc acquires the save operation's connection. The release function
// is invoked exactly once on every exit path.
type ConnectFunc func(ctx context.Context) (Conn, func(), error)

// StoreFactory creates the bulk store client for a temp location, using the
// credentials resolved for this save operation.
type StoreFactory func(ctx context.Context, location string, c domain.Credentials) (domain.ObjectStore, error)

// Options are the caller-visible configuration of one save operation.
type Options struct {
	Table           string
	Mode            domain.SaveMode
	TempRoot        string
	UseStagingTable bool
	PostActions     []string
	Credentials     *domain.Credentials // nil selects the environment chain
	Gzip            bool
	Workers         int
}

// Service runs save operations. Safe for concurrent use; each Save acquires
// its own connection and temp location.
type Service struct {
	logger   *slog.Logger
	connect  ConnectFunc
	newStore StoreFactory
	credsFor func(*domain.Credentials) domain.CredentialsProvider
}

// NewService creates a save Service. credsFor may be nil to use the default
// provider selection (static when explicit credentials are given, the
// environment chain otherwise).
func NewService(logger *slog.Logger, connect ConnectFunc, newStore StoreFactory,
	credsFor func(*domain.Credentials) domain.CredentialsProvider) *Service {
	if credsFor == nil {
		credsFor = creds.ProviderFor
	}
	return &Service{logger: logger, connect: connect, newStore: newStore, credsFor: credsFor}
}

// Save exports the dataset and loads it into the target table according to
// the save mode. It either completes fully or returns an error; a failed
// save is not resumable and must be restarted from the export phase.
func (s *Service) Save(ctx context.Context, src export.PartitionSource, sch domain.Schema, opts Options) error {
	if opts.Table == "" {
		return domain.ErrConfiguration("target table name is required")
	}
	if err := ddl.ValidateTableName(opts.Table); err != nil {
		return domain.ErrConfiguration("invalid target table name: %v", err)
	}
	if opts.TempRoot == "" {
		return domain.ErrConfiguration("temp location is required")
	}
	mode := opts.Mode
	if mode == "" {
		mode = domain.SaveModeErrorIfExists
	}

	normalized, columns, err := schema.Normalize(sch)
	if err != nil {
		return err
	}

	c, err := s.credsFor(opts.Credentials).Resolve(ctx)
	if err != nil {
		return err
	}

	opID := uuid.New().String()
	tempLocation := strings.TrimRight(opts.TempRoot, "/") + "/" + opID
	logger := s.logger.With("operation", opID, "table", opts.Table, "mode", string(mode))

	conn, release, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer release()

	switch mode {
	case domain.SaveModeErrorIfExists:
		if db.TableExists(ctx, conn, opts.Table) {
			return domain.ErrConfiguration("table %q already exists and save mode is %s", opts.Table, mode)
		}
	case domain.SaveModeIgnore:
		if db.TableExists(ctx, conn, opts.Table) {
			logger.Info("table exists, ignoring save")
			return nil
		}
	}

	st, err := s.newStore(ctx, tempLocation, c)
	if err != nil {
		return err
	}

	encOpts := export.DefaultEncoderOptions()
	encOpts.Gzip = opts.Gzip
	exporter := export.NewExporter(st, export.NewCSVEncoder(encOpts), logger, opts.Workers)

	manifest, err := exporter.Export(ctx, src, normalized, tempLocation)
	if err != nil {
		return err
	}

	orch := load.NewOrchestrator(conn, logger, load.Params{
		Mode:        mode,
		Columns:     columns,
		Manifest:    manifest,
		Credentials: c,
		PostActions: opts.PostActions,
	})

	if mode == domain.SaveModeOverwrite && opts.UseStagingTable {
		staging := load.NewStagingLoader(conn, func(ctx context.Context, table string) bool {
			return db.TableExists(ctx, conn, table)
		}, logger)
		if err := staging.LoadWithAtomicReplace(ctx, opts.Table, orch.Run); err != nil {
			return err
		}
	} else {
		if err := orch.Run(ctx, opts.Table); err != nil {
			return err
		}
	}

	logger.Info("save complete")
	return nil
}
