package join

import (
	"strings"

	"github.com/paveg/csvjoin/internal/errors"
)

// Kind selects the join semantics.
type Kind int

const (
	// Left keeps every left row, null-filling unmatched right cells.
	Left Kind = iota
	// Right keeps every right row, null-filling unmatched left cells.
	Right
	// Inner keeps rows whose key is present on both sides.
	Inner
	// Full keeps rows whose key is present on either side.
	Full
)

// DefaultKind is used when no kind is selected at all.
const DefaultKind = Left

var kindNames = [...]string{
	Left:  "left",
	Right: "right",
	Inner: "inner",
	Full:  "full",
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{Left, Right, Inner, Full}
}

// KindNames returns the tokens accepted by ParseKind.
func KindNames() []string {
	return kindNames[:]
}

// String returns the lower-case token of k.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the four supported kinds.
func (k Kind) Valid() bool {
	return k >= Left && k <= Full
}

// ParseKind maps a case-insensitive token to its Kind. Empty and blank
// tokens are rejected like any other unknown token.
func ParseKind(token string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	for _, k := range Kinds() {
		if kindNames[k] == normalized {
			return k, nil
		}
	}
	return 0, errors.NewUnsupportedJoinKindError(token)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.NewUnsupportedJoinKindError(k.String())
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
