package export

import (
	"context"
	"io"
)

// RowIterator yields a partition's rows in order. Next returns io.EOF after
// the last row.
type RowIterator interface {
	Next() ([]any, error)
	Close() error
}

// PartitionSource yields the dataset's partitions, decoupled from any
// specific execution engine. Implementations: in-memory fixtures
// (SliceSource), CSV files on disk (CSVFileSource), or an adapter over a
// distributed executor.
type PartitionSource interface {
	NumPartitions() int
	Partition(ctx context.Context, index int) (RowIterator, error)
}

// SliceSource is an in-memory PartitionSource. Each element is one
// partition's rows.
type SliceSource [][][]any

// NumPartitions returns the partition count.
func (s SliceSource) NumPartitions() int { return len(s) }

// Partition returns an iterator over partition index.
func (s SliceSource) Partition(_ context.Context, index int) (RowIterator, error) {
	return &sliceIterator{rows: s[index]}, nil
}

type sliceIterator struct {
	rows [][]any
	pos  int
}

func (it *sliceIterator) Next() ([]any, error) {
	if it.pos >= len(it.rows) {
		return nil, io.EOF
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

func (it *sliceIterator) Close() error { return nil }
