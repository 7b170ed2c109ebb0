// Package validation provides input validation utilities for keyed tables.
// It implements reusable validators for the checks a table must pass before
// it can take part in a join: key column presence, key uniqueness and row
// width consistency.
package validation

import (
	"github.com/paveg/csvjoin/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	Columns() []string
}

// ColumnValidator validates that a key column is present in a header
type ColumnValidator struct {
	cols   ColumnProvider
	source string
	key    string
}

// NewColumnValidator creates a validator for the key column of source
func NewColumnValidator(cols ColumnProvider, source, key string) *ColumnValidator {
	return &ColumnValidator{
		cols:   cols,
		source: source,
		key:    key,
	}
}

// Validate checks if the key column exists
func (v *ColumnValidator) Validate() error {
	if !v.cols.HasColumn(v.key) {
		return errors.NewMissingPrimaryKeyError(v.source, v.key, v.cols.Columns())
	}
	return nil
}

// UniqueValidator validates that a column holds no repeated values
type UniqueValidator struct {
	rows   [][]string
	index  int
	source string
	key    string
}

// NewUniqueValidator creates a validator for uniqueness of rows[*][index]
func NewUniqueValidator(rows [][]string, index int, source, key string) *UniqueValidator {
	return &UniqueValidator{
		rows:   rows,
		index:  index,
		source: source,
		key:    key,
	}
}

// Validate scans rows in order and reports the first duplicate value.
// Rows too short to hold the column yield a RowWidth error.
func (v *UniqueValidator) Validate() error {
	seen := make(map[string]struct{}, len(v.rows))
	for i, row := range v.rows {
		if v.index >= len(row) {
			return errors.NewRowWidthError(v.source, i+1, v.index+1, len(row))
		}
		value := row[v.index]
		if _, dup := seen[value]; dup {
			return errors.NewDuplicateKeyError(v.source, v.key, value, i+1)
		}
		seen[value] = struct{}{}
	}
	return nil
}

// MinWidthValidator validates that every row has at least width cells
type MinWidthValidator struct {
	rows   [][]string
	width  int
	source string
}

// NewMinWidthValidator creates a validator that rows reach the given width
func NewMinWidthValidator(rows [][]string, width int, source string) *MinWidthValidator {
	return &MinWidthValidator{
		rows:   rows,
		width:  width,
		source: source,
	}
}

// Validate checks every row reaches the minimum width
func (v *MinWidthValidator) Validate() error {
	for i, row := range v.rows {
		if len(row) < v.width {
			return errors.NewRowWidthError(v.source, i+1, v.width, len(row))
		}
	}
	return nil
}

// RowWidthValidator validates that every row matches the header width
type RowWidthValidator struct {
	rows   [][]string
	width  int
	source string
}

// NewRowWidthValidator creates a validator for exact row widths
func NewRowWidthValidator(rows [][]string, width int, source string) *RowWidthValidator {
	return &RowWidthValidator{
		rows:   rows,
		width:  width,
		source: source,
	}
}

// Validate checks each row has exactly width cells
func (v *RowWidthValidator) Validate() error {
	for i, row := range v.rows {
		if len(row) != v.width {
			return errors.NewRowWidthError(v.source, i+1, v.width, len(row))
		}
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convenience validation functions

// ValidateColumn is a convenience function for key column validation
func ValidateColumn(cols ColumnProvider, source, key string) error {
	return NewColumnValidator(cols, source, key).Validate()
}

// ValidateUnique is a convenience function for uniqueness validation
func ValidateUnique(rows [][]string, index int, source, key string) error {
	return NewUniqueValidator(rows, index, source, key).Validate()
}

// ValidateRowWidth is a convenience function for row width validation
func ValidateRowWidth(rows [][]string, width int, source string) error {
	return NewRowWidthValidator(rows, width, source).Validate()
}
