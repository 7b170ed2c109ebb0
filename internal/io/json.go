package io

import (
	"encoding/json"
	"fmt"

	"github.com/paveg/csvjoin/internal/errors"
)

// jsonDocument is the on-disk JSON layout.
type jsonDocument struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Read decodes a JSON header/rows document
func (r *JSONReader) Read() (*Records, error) {
	var doc jsonDocument
	decoder := json.NewDecoder(r.reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if doc.Header == nil {
		return nil, errors.NewInvalidInputError("Read", `JSON document has no "header"`)
	}
	if doc.Rows == nil {
		doc.Rows = [][]string{}
	}
	return &Records{Header: doc.Header, Rows: doc.Rows}, nil
}

// Write encodes the header and rows as one JSON document
func (w *JSONWriter) Write(header []string, rows [][]string) error {
	if rows == nil {
		rows = [][]string{}
	}
	encoder := json.NewEncoder(w.writer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(jsonDocument{Header: header, Rows: rows}); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
