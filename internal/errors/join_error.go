// Package errors provides standardized error types for table loading and join
// operations. JoinError carries the failing operation, the input it concerns
// and the offending column or value, with error wrapping support.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a JoinError.
type Kind int

const (
	// KindUnknown is the zero value and matches nothing in Is.
	KindUnknown Kind = iota
	// MissingPrimaryKeyColumn means the key column is absent from a header.
	MissingPrimaryKeyColumn
	// DuplicatePrimaryKeyValue means the key column repeats a value.
	DuplicatePrimaryKeyValue
	// UnsupportedJoinKind means a join kind outside left/right/inner/full.
	UnsupportedJoinKind
	// RowWidth means a data row does not fit its header.
	RowWidth
	// InvalidInput covers malformed input and configuration.
	InvalidInput
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case MissingPrimaryKeyColumn:
		return "MissingPrimaryKeyColumn"
	case DuplicatePrimaryKeyValue:
		return "DuplicatePrimaryKeyValue"
	case UnsupportedJoinKind:
		return "UnsupportedJoinKind"
	case RowWidth:
		return "RowWidth"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

// JoinError represents standardized errors across loading and join operations
type JoinError struct {
	Kind    Kind   // Error classification
	Op      string // Operation name (e.g., "Load", "Join", "ParseKind")
	Source  string // Input identifier, usually a file name
	Column  string // Column name if applicable
	Value   string // Offending value if applicable
	Message string // Human-readable error description
	Hint    string // Optional remediation hint
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *JoinError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	sb.WriteString(" operation failed")
	if e.Source != "" {
		fmt.Fprintf(&sb, " for %s", e.Source)
	}
	if e.Column != "" {
		fmt.Fprintf(&sb, " on column '%s'", e.Column)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause for error wrapping support
func (e *JoinError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a JoinError of the same kind whose non-empty
// Op, Source, Column and Value fields all match e.
func (e *JoinError) Is(target error) bool {
	t, ok := target.(*JoinError)
	if !ok || t.Kind == KindUnknown || t.Kind != e.Kind {
		return false
	}
	return matches(t.Op, e.Op) &&
		matches(t.Source, e.Source) &&
		matches(t.Column, e.Column) &&
		matches(t.Value, e.Value)
}

func matches(want, got string) bool {
	return want == "" || want == got
}

// WithHint returns a copy of e carrying hint.
func (e *JoinError) WithHint(hint string) *JoinError {
	cp := *e
	cp.Hint = hint
	return &cp
}

// NewMissingPrimaryKeyError creates an error for a key column absent from header.
func NewMissingPrimaryKeyError(source, key string, header []string) *JoinError {
	return &JoinError{
		Kind:    MissingPrimaryKeyColumn,
		Op:      "Load",
		Source:  source,
		Column:  key,
		Message: "primary key column not in header",
		Hint:    fmt.Sprintf("available columns: [%s]", strings.Join(header, ", ")),
	}
}

// NewDuplicateKeyError creates an error for the first repeated key value.
func NewDuplicateKeyError(source, key, value string, row int) *JoinError {
	return &JoinError{
		Kind:    DuplicatePrimaryKeyValue,
		Op:      "Load",
		Source:  source,
		Column:  key,
		Value:   value,
		Message: fmt.Sprintf("primary key column is not unique (duplicate value found: %s, row %d)", value, row),
	}
}

// NewUnsupportedJoinKindError creates an error for an unknown join kind token.
func NewUnsupportedJoinKindError(kind string) *JoinError {
	return &JoinError{
		Kind:    UnsupportedJoinKind,
		Op:      "ParseKind",
		Value:   kind,
		Message: fmt.Sprintf("unsupported join kind %q", kind),
		Hint:    "expected one of left, right, inner, full",
	}
}

// NewRowWidthError creates an error for a row whose width does not fit.
func NewRowWidthError(source string, row, expected, actual int) *JoinError {
	return &JoinError{
		Kind:    RowWidth,
		Op:      "Load",
		Source:  source,
		Message: fmt.Sprintf("row %d: expected %d cells, got %d", row, expected, actual),
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *JoinError {
	return &JoinError{
		Kind:    InvalidInput,
		Op:      op,
		Message: message,
	}
}

// NewIOError wraps a read or write failure of source.
func NewIOError(op, source string, cause error) *JoinError {
	return &JoinError{
		Kind:    InvalidInput,
		Op:      op,
		Source:  source,
		Message: "i/o error",
		Cause:   cause,
	}
}

// Predefined sentinels for errors.Is checks.
var (
	// ErrMissingPrimaryKeyColumn matches any missing key column error
	ErrMissingPrimaryKeyColumn = &JoinError{Kind: MissingPrimaryKeyColumn}

	// ErrDuplicatePrimaryKeyValue matches any duplicate key error
	ErrDuplicatePrimaryKeyValue = &JoinError{Kind: DuplicatePrimaryKeyValue}

	// ErrUnsupportedJoinKind matches any unknown join kind error
	ErrUnsupportedJoinKind = &JoinError{Kind: UnsupportedJoinKind}

	// ErrRowWidth matches any row width error
	ErrRowWidth = &JoinError{Kind: RowWidth}

	// ErrInvalidInput matches malformed input and configuration errors
	ErrInvalidInput = &JoinError{Kind: InvalidInput}
)
