// Package csvjoin joins two tables on one primary key column each.
//
// A Table is a header, a body of string rows and the name of its key column.
// Building a Table checks that the key column exists and that its values are
// unique. Join combines two tables with LEFT, RIGHT, INNER or FULL semantics;
// every output row is the left cells followed by the right cells, with an
// unmatched side filled by NullToken.
//
// JoinFiles runs the whole load, join and write cycle on files.
package csvjoin

import (
	"context"
	"io"

	"github.com/paveg/csvjoin/internal/config"
	"github.com/paveg/csvjoin/internal/errors"
	"github.com/paveg/csvjoin/internal/join"
	"github.com/paveg/csvjoin/internal/pipeline"
	"github.com/paveg/csvjoin/internal/table"
)

// Table is a keyed table. It is immutable once built.
type Table = table.Table

// TableOption configures table construction.
type TableOption = table.Option

// Kind selects the join semantics.
type Kind = join.Kind

// Result is the header and rows produced by a join.
type Result = join.Result

// Config holds loader, writer and execution settings for JoinFiles.
type Config = config.Config

// Request names the files and key columns of a JoinFiles call.
type Request = pipeline.Request

// Summary describes a finished JoinFiles call.
type Summary = pipeline.Summary

// Option configures JoinFiles.
type Option = pipeline.Option

// JoinError is the error type returned for invalid tables and join kinds.
type JoinError = errors.JoinError

// Join kinds
const (
	Left  = join.Left
	Right = join.Right
	Inner = join.Inner
	Full  = join.Full
)

// NullToken fills the cells of an unmatched side.
const NullToken = join.NullToken

// Sentinel errors for use with errors.Is.
var (
	ErrMissingPrimaryKeyColumn  = errors.ErrMissingPrimaryKeyColumn
	ErrDuplicatePrimaryKeyValue = errors.ErrDuplicatePrimaryKeyValue
	ErrUnsupportedJoinKind      = errors.ErrUnsupportedJoinKind
	ErrRowWidth                 = errors.ErrRowWidth
)

// NewTable builds a Table from a header and body keyed on primaryKey. source
// names the origin of the data in errors.
func NewTable(header []string, body [][]string, primaryKey, source string, opts ...TableOption) (*Table, error) {
	return table.New(header, body, primaryKey, source, opts...)
}

// WithStrictRowWidth requires every row to have exactly as many cells as the
// header.
func WithStrictRowWidth() TableOption {
	return table.WithStrictRowWidth()
}

// ParseKind parses left, right, inner or full, ignoring case.
func ParseKind(token string) (Kind, error) {
	return join.ParseKind(token)
}

// Join joins left and right.
func Join(kind Kind, left, right *Table) (*Result, error) {
	return join.Execute(kind, left, right)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return config.NewConfig()
}

// WithConfig sets the configuration used by JoinFiles.
func WithConfig(cfg Config) Option {
	return pipeline.WithConfig(cfg)
}

// WithPreview renders the first Config.Preview result rows to w as a text
// table.
func WithPreview(w io.Writer) Option {
	return pipeline.WithPreview(w)
}

// JoinFiles loads both inputs of req, joins them and writes the result to
// req.OutputPath.
func JoinFiles(ctx context.Context, req Request, opts ...Option) (*Summary, error) {
	return pipeline.Run(ctx, req, opts...)
}
