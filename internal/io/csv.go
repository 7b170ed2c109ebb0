package io

import (
	"encoding/csv"
	"fmt"

	"github.com/paveg/csvjoin/internal/errors"
	"golang.org/x/text/transform"
)

// Read reads CSV data. Cells are kept as text; rows may differ in width.
func (r *CSVReader) Read() (*Records, error) {
	decoder, err := textDecoder(r.options.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(r.reader, decoder))
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.LazyQuotes = r.options.LazyQuotes
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, errors.NewInvalidInputError("Read", "input is empty, expected a header row")
	}

	if !r.options.Header {
		header := make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("column_%d", i)
		}
		return &Records{Header: header, Rows: records}, nil
	}

	return &Records{Header: records[0], Rows: records[1:]}, nil
}

// Write writes the header (when enabled) and every row
func (w *CSVWriter) Write(header []string, rows [][]string) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter
	csvWriter.UseCRLF = w.options.UseCRLF

	if w.options.Header {
		if err := csvWriter.Write(header); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	for i, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
