package join

import (
	"github.com/paveg/csvjoin/internal/table"
)

// NullToken fills every cell of an unmatched side. It is the literal text
// "null", not an empty cell.
const NullToken = "null"

// Strategy produces output rows for one join kind.
type Strategy interface {
	// Join returns left ++ right rows. It never fails for valid tables.
	Join(left, right *table.Table) [][]string
	// Kind returns the kind implemented.
	Kind() Kind
}

type leftJoin struct{}

// Join iterates left rows in order and looks each key up on the right.
func (leftJoin) Join(left, right *table.Table) [][]string {
	rows := make([][]string, 0, left.Len())
	fill := nullRow(right.Width())
	for i, leftRow := range left.Body() {
		rightRow, ok := right.Lookup(left.Key(i))
		if !ok {
			rightRow = fill
		}
		rows = append(rows, concat(leftRow, rightRow))
	}
	return rows
}

func (leftJoin) Kind() Kind { return Left }

type rightJoin struct{}

// Join iterates right rows in order and looks each key up on the left.
func (rightJoin) Join(left, right *table.Table) [][]string {
	rows := make([][]string, 0, right.Len())
	fill := nullRow(left.Width())
	for i, rightRow := range right.Body() {
		leftRow, ok := left.Lookup(right.Key(i))
		if !ok {
			leftRow = fill
		}
		rows = append(rows, concat(leftRow, rightRow))
	}
	return rows
}

func (rightJoin) Kind() Kind { return Right }

type innerJoin struct{}

// Join emits the key intersection in left row order.
func (innerJoin) Join(left, right *table.Table) [][]string {
	rows := make([][]string, 0, min(left.Len(), right.Len()))
	for i, leftRow := range left.Body() {
		if rightRow, ok := right.Lookup(left.Key(i)); ok {
			rows = append(rows, concat(leftRow, rightRow))
		}
	}
	return rows
}

func (innerJoin) Kind() Kind { return Inner }

type fullJoin struct{}

// Join emits the key union: left keys in left row order, then right-only
// keys in right row order.
func (fullJoin) Join(left, right *table.Table) [][]string {
	rows := make([][]string, 0, left.Len()+right.Len())
	leftFill := nullRow(left.Width())
	rightFill := nullRow(right.Width())

	for i, leftRow := range left.Body() {
		rightRow, ok := right.Lookup(left.Key(i))
		if !ok {
			rightRow = rightFill
		}
		rows = append(rows, concat(leftRow, rightRow))
	}
	for i, rightRow := range right.Body() {
		if !left.Contains(right.Key(i)) {
			rows = append(rows, concat(leftFill, rightRow))
		}
	}
	return rows
}

func (fullJoin) Kind() Kind { return Full }

// concat returns a fresh row holding left cells followed by right cells.
func concat(left, right []string) []string {
	row := make([]string, 0, len(left)+len(right))
	row = append(row, left...)
	return append(row, right...)
}

func nullRow(width int) []string {
	row := make([]string, width)
	for i := range row {
		row[i] = NullToken
	}
	return row
}
