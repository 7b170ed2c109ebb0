// Package join implements the join engine over two keyed tables.
//
// Four strategies are provided, one per Kind. Every output row is the left
// row's cells followed by the right row's cells; an unmatched side is filled
// with NullToken once per column of that side's header.
//
// Row order:
//   - Left follows left row order, Right follows right row order.
//   - Inner follows left row order over the matching keys.
//   - Full lists every left key in left row order, then right-only keys in
//     right row order.
package join

import (
	"github.com/paveg/csvjoin/internal/errors"
	"github.com/paveg/csvjoin/internal/table"
)

var strategies = map[Kind]Strategy{
	Left:  leftJoin{},
	Right: rightJoin{},
	Inner: innerJoin{},
	Full:  fullJoin{},
}

// For returns the Strategy implementing kind.
func For(kind Kind) (Strategy, error) {
	s, ok := strategies[kind]
	if !ok {
		return nil, errors.NewUnsupportedJoinKindError(kind.String())
	}
	return s, nil
}

// Result is the output of a join: a plain header and rows, not keyed.
type Result struct {
	Kind   Kind
	Header []string
	Rows   [][]string
}

// Len returns the number of output rows.
func (r *Result) Len() int { return len(r.Rows) }

// Width returns the number of output columns.
func (r *Result) Width() int { return len(r.Header) }

// Header returns the output header: left columns followed by right columns,
// with repeated names kept as they are.
func Header(left, right *table.Table) []string {
	return concat(left.Header(), right.Header())
}

// Execute joins left and right using kind.
func Execute(kind Kind, left, right *table.Table) (*Result, error) {
	s, err := For(kind)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:   kind,
		Header: Header(left, right),
		Rows:   s.Join(left, right),
	}, nil
}

// MatchedKeys returns how many left keys also occur on the right.
func MatchedKeys(left, right *table.Table) int {
	n := 0
	for _, key := range left.Keys() {
		if right.Contains(key) {
			n++
		}
	}
	return n
}
