// Package table provides the keyed in-memory table used as join input.
//
// A Table wraps a loaded header and body together with the name of its
// primary key column. Construction validates that the key column exists and
// that its values are unique, then builds a KeyIndex from key value to row
// position. Tables are immutable once built.
package table

import (
	"slices"

	"github.com/paveg/csvjoin/internal/validation"
)

// Table is a header and body keyed by one column.
type Table struct {
	header     []string
	body       [][]string
	primaryKey string
	source     string
	keyIndex   int
	keys       *KeyIndex
}

// Option configures table construction.
type Option func(*options)

type options struct {
	strictRowWidth bool
}

// WithStrictRowWidth requires every row to have exactly as many cells as the
// header.
func WithStrictRowWidth() Option {
	return func(o *options) {
		o.strictRowWidth = true
	}
}

// New builds a Table from header and body keyed on primaryKey. source names
// the input in error messages.
//
// The key column must be present in header and its values unique across body;
// the first duplicate in row order is reported. Rows too short to hold the key
// cell are rejected.
func New(header []string, body [][]string, primaryKey, source string, opts ...Option) (*Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		header:     header,
		body:       body,
		primaryKey: primaryKey,
		source:     source,
	}

	if err := validation.ValidateColumn(t, source, primaryKey); err != nil {
		return nil, err
	}
	t.keyIndex = slices.Index(header, primaryKey)

	validators := []validation.Validator{
		validation.NewMinWidthValidator(body, t.keyIndex+1, source),
	}
	if o.strictRowWidth {
		validators = append(validators, validation.NewRowWidthValidator(body, len(header), source))
	}
	validators = append(validators, validation.NewUniqueValidator(body, t.keyIndex, source, primaryKey))

	if err := validation.NewCompoundValidator(validators...).Validate(); err != nil {
		return nil, err
	}

	// Keys are unique once validation passes.
	t.keys = NewKeyIndex(len(body))
	for i, row := range body {
		t.keys.Put(row[t.keyIndex], i)
	}

	return t, nil
}

// Header returns the column names.
func (t *Table) Header() []string { return t.header }

// Columns returns the column names. It satisfies validation.ColumnProvider.
func (t *Table) Columns() []string { return t.header }

// HasColumn reports whether name appears in the header.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.header, name)
}

// Body returns all rows in stored order.
func (t *Table) Body() [][]string { return t.body }

// Row returns the row at position i.
func (t *Table) Row(i int) []string { return t.body[i] }

// PrimaryKey returns the key column name.
func (t *Table) PrimaryKey() string { return t.primaryKey }

// Source returns the input identifier.
func (t *Table) Source() string { return t.source }

// KeyIndex returns the position of the key column in the header.
func (t *Table) KeyIndex() int { return t.keyIndex }

// Key returns the key value of row i.
func (t *Table) Key(i int) string { return t.body[i][t.keyIndex] }

// Lookup returns the row whose key equals key.
func (t *Table) Lookup(key string) ([]string, bool) {
	i, ok := t.keys.Get(key)
	if !ok {
		return nil, false
	}
	return t.body[i], true
}

// RowIndex returns the position of the row whose key equals key.
func (t *Table) RowIndex(key string) (int, bool) {
	return t.keys.Get(key)
}

// Contains reports whether a row has the given key.
func (t *Table) Contains(key string) bool {
	return t.keys.Contains(key)
}

// Keys returns all key values in row order. The slice must not be modified.
func (t *Table) Keys() []string { return t.keys.Keys() }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.body) }

// Width returns the number of header columns.
func (t *Table) Width() int { return len(t.header) }
