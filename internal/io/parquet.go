package io

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// Read reads Parquet data. Every value is rendered as text; nulls become
// empty cells.
func (r *ParquetReader) Read() (*Records, error) {
	// Read all data into memory for Parquet reading
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}

	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, r.mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer table.Release()

	return tableToRecords(table), nil
}

// tableToRecords converts an Arrow table to row-major string cells.
func tableToRecords(table arrow.Table) *Records {
	numRows := int(table.NumRows())
	numCols := int(table.NumCols())

	header := make([]string, numCols)
	rows := make([][]string, numRows)
	for i := range rows {
		rows[i] = make([]string, numCols)
	}

	for c := range numCols {
		header[c] = table.Schema().Field(c).Name

		offset := 0
		for _, chunk := range table.Column(c).Data().Chunks() {
			for i := range chunk.Len() {
				if !chunk.IsNull(i) {
					rows[offset+i][c] = chunk.ValueStr(i)
				}
			}
			offset += chunk.Len()
		}
	}

	return &Records{Header: header, Rows: rows}
}

// Write writes header and rows as string columns. Rows shorter than the
// header are padded with empty cells and extra cells are dropped.
func (w *ParquetWriter) Write(header []string, rows [][]string) error {
	table := w.recordsToTable(header, rows)
	defer table.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compressionCodec(w.options.Compression)),
		parquet.WithBatchSize(int64(max(w.options.BatchSize, 1))),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(w.mem))

	writer, err := pqarrow.NewFileWriter(table.Schema(), w.writer, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	if err := writer.WriteTable(table, int64(max(w.options.BatchSize, 1))); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing table: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}

// recordsToTable builds an Arrow table of UTF-8 columns.
func (w *ParquetWriter) recordsToTable(header []string, rows [][]string) arrow.Table {
	names := uniqueFieldNames(header)
	fields := make([]arrow.Field, len(header))
	columns := make([]arrow.Column, len(header))

	for c := range header {
		builder := array.NewStringBuilder(w.mem)
		builder.Reserve(len(rows))
		for _, row := range rows {
			if c < len(row) {
				builder.Append(row[c])
			} else {
				builder.Append("")
			}
		}
		arr := builder.NewArray()
		builder.Release()

		fields[c] = arrow.Field{Name: names[c], Type: arrow.BinaryTypes.String}
		chunked := arrow.NewChunked(arrow.BinaryTypes.String, []arrow.Array{arr})
		column := arrow.NewColumn(fields[c], chunked)
		columns[c] = *column

		arr.Release()
		chunked.Release()
	}

	schema := arrow.NewSchema(fields, nil)
	table := array.NewTable(schema, columns, int64(len(rows)))
	for i := range columns {
		columns[i].Release()
	}
	return table
}

// uniqueFieldNames suffixes repeated names with _2, _3, ... since Parquet
// column paths must be unique.
func uniqueFieldNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		candidate := name
		for n := 2; used[candidate]; n++ {
			candidate = name + "_" + strconv.Itoa(n)
		}
		used[candidate] = true
		names[i] = candidate
	}
	return names
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Codecs.Gzip
	case "lz4":
		return compress.Codecs.Lz4Raw
	case "zstd":
		return compress.Codecs.Zstd
	case "uncompressed", "none":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}

// ValidateCompression reports whether name is a supported Parquet codec.
func ValidateCompression(name string) error {
	switch name {
	case "", "snappy", "gzip", "lz4", "zstd", "uncompressed", "none":
		return nil
	default:
		return fmt.Errorf("unsupported parquet compression %q", name)
	}
}
