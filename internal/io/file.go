package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/csvjoin/internal/errors"
)

const outputFileMode = 0o644

// FileOptions selects the format and its settings for file operations.
type FileOptions struct {
	// Format forces a format; FormatAuto detects it from the extension
	Format Format
	// CSV configures delimited text
	CSV CSVOptions
	// Parquet configures Parquet output
	Parquet ParquetOptions
	// Allocator is used for Arrow buffers (default: Go allocator)
	Allocator memory.Allocator
}

// DefaultFileOptions returns default options for every format
func DefaultFileOptions() FileOptions {
	return FileOptions{
		Format:    FormatAuto,
		CSV:       DefaultCSVOptions(),
		Parquet:   DefaultParquetOptions(),
		Allocator: memory.NewGoAllocator(),
	}
}

func (o FileOptions) resolve(path string) Format {
	if o.Format != FormatAuto {
		return o.Format
	}
	return DetectFormat(path)
}

func (o FileOptions) allocator() memory.Allocator {
	if o.Allocator == nil {
		return memory.DefaultAllocator
	}
	return o.Allocator
}

// NewReader returns a reader for format over r.
func NewReader(r io.Reader, format Format, opts FileOptions) TableReader {
	switch format {
	case FormatJSON:
		return NewJSONReader(r)
	case FormatParquet:
		return NewParquetReader(r, opts.allocator())
	default:
		return NewCSVReader(r, opts.CSV)
	}
}

// NewWriter returns a writer for format over w.
func NewWriter(w io.Writer, format Format, opts FileOptions) TableWriter {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w)
	case FormatParquet:
		return NewParquetWriter(w, opts.Parquet, opts.allocator())
	default:
		return NewCSVWriter(w, opts.CSV)
	}
}

// ReadFile loads the header and body of path.
func ReadFile(path string, opts FileOptions) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("Read", path, err)
	}
	defer f.Close()

	records, err := NewReader(bufio.NewReader(f), opts.resolve(path), opts).Read()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// WriteFile writes header and rows to path. Data goes to a temporary file in
// the same directory that is renamed over path only once fully written.
func WriteFile(path string, header []string, rows [][]string, opts FileOptions) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewIOError("Write", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	buffered := bufio.NewWriter(tmp)
	if err = NewWriter(buffered, opts.resolve(path), opts).Write(header, rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = buffered.Flush(); err != nil {
		return errors.NewIOError("Write", path, err)
	}
	if err = tmp.Chmod(outputFileMode); err != nil {
		return errors.NewIOError("Write", path, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.NewIOError("Write", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.NewIOError("Write", path, err)
	}
	return nil
}
