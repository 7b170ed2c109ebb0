// Package io provides the table loader and output writer.
//
// Readers turn a source into a header and body of opaque string cells;
// writers persist a header and rows. Three formats are supported:
//   - delimited text (CSV by default, any single-rune delimiter)
//   - JSON documents of the form {"header": [...], "rows": [[...], ...]}
//   - Parquet files where every column is a UTF-8 string column
//
// ReadFile and WriteFile pick the format from the file extension unless one
// is configured explicitly. WriteFile replaces its target atomically.
package io

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/csvjoin/internal/errors"
)

const (
	// DefaultBatchSize is the default row batch size for Parquet writes
	DefaultBatchSize = 1000
	// DefaultCompression is the default Parquet compression codec
	DefaultCompression = "snappy"
	// DefaultEncoding is the default text encoding of delimited input
	DefaultEncoding = "utf-8"
)

// Records is a loaded header and body.
type Records struct {
	Header []string
	Rows   [][]string
}

// TableReader reads a header and body from a source
type TableReader interface {
	// Read reads the whole source
	Read() (*Records, error)
}

// TableWriter writes a header and rows to a destination
type TableWriter interface {
	// Write writes the header followed by every row
	Write(header []string, rows [][]string) error
}

// Format identifies a file format.
type Format string

const (
	// FormatAuto picks the format from the file extension
	FormatAuto Format = ""
	// FormatCSV is delimited text
	FormatCSV Format = "csv"
	// FormatJSON is a JSON header/rows document
	FormatJSON Format = "json"
	// FormatParquet is Apache Parquet
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name. "auto" and "" yield FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, "auto":
		return FormatAuto, nil
	case FormatCSV, "tsv", "txt":
		return FormatCSV, nil
	case FormatJSON, FormatParquet:
		return f, nil
	default:
		return FormatAuto, errors.NewInvalidInputError("ParseFormat", "unsupported format "+name).
			WithHint("expected one of auto, csv, json, parquet")
	}
}

// DetectFormat returns the format implied by the extension of path.
// Unknown extensions are treated as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return FormatParquet
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// Header indicates whether the first row contains headers
	Header bool
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
	// LazyQuotes allows quotes inside unquoted fields
	LazyQuotes bool
	// UseCRLF terminates written lines with \r\n
	UseCRLF bool
	// Encoding is the text encoding of input (utf-8, latin1, windows-1252)
	Encoding string
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:        ',',
		Comment:          0,
		Header:           true,
		SkipInitialSpace: false,
		LazyQuotes:       false,
		UseCRLF:          false,
		Encoding:         DefaultEncoding,
	}
}

// CSVReader reads delimited text
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions) *CSVReader {
	return &CSVReader{
		reader:  reader,
		options: options,
	}
}

// CSVWriter writes delimited text
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{
		writer:  writer,
		options: options,
	}
}

// JSONReader reads a JSON header/rows document
type JSONReader struct {
	reader io.Reader
}

// NewJSONReader creates a new JSON reader
func NewJSONReader(reader io.Reader) *JSONReader {
	return &JSONReader{reader: reader}
}

// JSONWriter writes a JSON header/rows document
type JSONWriter struct {
	writer io.Writer
}

// NewJSONWriter creates a new JSON writer
func NewJSONWriter(writer io.Writer) *JSONWriter {
	return &JSONWriter{writer: writer}
}

// ParquetOptions contains configuration options for Parquet operations
type ParquetOptions struct {
	// Compression type for Parquet files
	Compression string
	// BatchSize for writing operations
	BatchSize int
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{
		Compression: DefaultCompression,
		BatchSize:   DefaultBatchSize,
	}
}

// ParquetReader reads Parquet data into string cells
type ParquetReader struct {
	reader io.Reader
	mem    memory.Allocator
}

// NewParquetReader creates a new Parquet reader
func NewParquetReader(reader io.Reader, mem memory.Allocator) *ParquetReader {
	return &ParquetReader{
		reader: reader,
		mem:    mem,
	}
}

// ParquetWriter writes string cells as a Parquet file
type ParquetWriter struct {
	writer  io.Writer
	options ParquetOptions
	mem     memory.Allocator
}

// NewParquetWriter creates a new Parquet writer with the specified options
func NewParquetWriter(writer io.Writer, options ParquetOptions, mem memory.Allocator) *ParquetWriter {
	return &ParquetWriter{
		writer:  writer,
		options: options,
		mem:     mem,
	}
}
