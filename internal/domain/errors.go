package domain

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates a missing target table name or invalid
// pre-flight state, raised before any side effect.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// SchemaError indicates duplicate normalized column names or an unsupported
// semantic type, raised before any side effect.
type SchemaError struct {
	Message string
	Columns []string // original (pre-normalization) column names, when relevant
}

func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Columns, ", ")
}

// ExportError indicates a bulk store write or listing failure, or missing
// output files despite recorded non-empty partitions. Raised before any DDL.
type ExportError struct {
	Message string
	Err     error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ExportError) Unwrap() error { return e.Err }

// LoadError wraps a DDL/DML execution failure verbatim, carrying the failing
// statement text for diagnostics.
type LoadError struct {
	Statement string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("statement failed: %v (statement: %s)", e.Err, e.Statement)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SwapError indicates a promote-step (swap or rename) failure. The target
// table state afterward depends on the warehouse's atomicity guarantee.
type SwapError struct {
	Statement string
	Err       error
}

func (e *SwapError) Error() string {
	return fmt.Sprintf("promote failed: %v (statement: %s)", e.Err, e.Statement)
}

func (e *SwapError) Unwrap() error { return e.Err }

// ErrConfiguration creates a ConfigurationError with a formatted message.
func ErrConfiguration(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ErrSchema creates a SchemaError with a formatted message.
func ErrSchema(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}

// ErrSchemaColumns creates a SchemaError naming the offending columns.
func ErrSchemaColumns(message string, columns []string) *SchemaError {
	return &SchemaError{Message: message, Columns: columns}
}

// ErrExport creates an ExportError with a formatted message.
func ErrExport(format string, args ...interface{}) *ExportError {
	return &ExportError{Message: fmt.Sprintf(format, args...)}
}

// ErrExportWrap creates an ExportError wrapping an underlying store error.
func ErrExportWrap(err error, format string, args ...interface{}) *ExportError {
	return &ExportError{Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrLoad creates a LoadError for a failing statement.
func ErrLoad(statement string, err error) *LoadError {
	return &LoadError{Statement: statement, Err: err}
}

// ErrSwap creates a SwapError for a failing promote statement.
func ErrSwap(statement string, err error) *SwapError {
	return &SwapError{Statement: statement, Err: err}
}
