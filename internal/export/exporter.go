package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// FilePrefix is the fixed name prefix shared by all export output files.
// The manifest is the temp location plus this prefix.
const FilePrefix = "part"

const defaultWorkers = 8

// Exporter converts a partitioned dataset and writes it to the bulk store.
type Exporter struct {
	store   domain.ObjectStore
	encoder RecordEncoder
	logger  *slog.Logger
	workers int
}

// NewExporter creates an Exporter writing through store with the given
// encoder. workers bounds partition parallelism (<= 0 selects the default).
func NewExporter(store domain.ObjectStore, encoder RecordEncoder, logger *slog.Logger, workers int) *Exporter {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Exporter{store: store, encoder: encoder, logger: logger, workers: workers}
}

// Export converts every partition concurrently, writes the output files under
// tempLocation, and returns the manifest. A nil manifest (with nil error)
// means no partition produced any rows.
func (e *Exporter) Export(ctx context.Context, src PartitionSource, sch domain.Schema, tempLocation string) (*domain.Manifest, error) {
	n := src.NumPartitions()
	convert := RowConverter(sch)

	// Each worker writes only its own slot; the union happens after the
	// barrier, so no coordination between workers is needed.
	nonEmpty := make([]bool, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rows, err := e.exportPartition(gctx, src, convert, i)
			if err != nil {
				return fmt.Errorf("partition %d: %w", i, err)
			}
			nonEmpty[i] = rows > 0
			return nil
		})
	}
	// Synchronization barrier: nonEmpty must not be inspected before this.
	if err := g.Wait(); err != nil {
		var exportErr *domain.ExportError
		if errors.As(err, &exportErr) {
			return nil, err
		}
		return nil, domain.ErrExportWrap(err, "export to %s", tempLocation)
	}

	var written []int
	for i, ok := range nonEmpty {
		if ok {
			written = append(written, i)
		}
	}
	if len(written) == 0 {
		e.logger.Info("export produced no data", "location", tempLocation, "partitions", n)
		return nil, nil
	}

	// Defensive check: the files recorded as written must be listable under
	// the temp location before any DDL references them.
	names, err := e.store.List(ctx, FilePrefix)
	if err != nil {
		return nil, domain.ErrExportWrap(err, "list output files under %s", tempLocation)
	}
	if len(names) == 0 {
		return nil, domain.ErrExport(
			"no output files under %s despite %d non-empty partition(s)", tempLocation, len(written))
	}

	e.logger.Info("export complete",
		"location", tempLocation, "partitions", n, "non_empty", len(written), "files", len(names))

	return &domain.Manifest{Location: tempLocation, Prefix: FilePrefix}, nil
}

// exportPartition converts and writes one partition, returning its row count.
// Empty partitions emit no output object.
func (e *Exporter) exportPartition(ctx context.Context, src PartitionSource, convert func([]any) []any, index int) (int, error) {
	it, err := src.Partition(ctx, index)
	if err != nil {
		return 0, err
	}
	defer it.Close() //nolint:errcheck

	var buf bytes.Buffer
	w, err := e.encoder.NewWriter(&buf)
	if err != nil {
		return 0, err
	}

	rows := 0
	for {
		row, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}
		if err := w.Write(convert(row)); err != nil {
			return rows, err
		}
		rows++
	}
	if err := w.Close(); err != nil {
		return rows, err
	}
	if rows == 0 {
		return 0, nil
	}

	name := fmt.Sprintf("%s%05d%s", FilePrefix, index, e.encoder.Suffix())
	if err := e.store.Put(ctx, name, &buf); err != nil {
		return rows, domain.ErrExportWrap(err, "write %s", name)
	}
	e.logger.Debug("partition written", "object", name, "rows", rows)
	return rows, nil
}
