// Package testutil provides common testing utilities shared across the
// csvjoin packages:
//   - keyed table construction with automatic failure on invalid input
//   - the letter fixtures (columns a..e and l..p) used by join tests
//   - temporary fixture files and CSV readback
//   - a logger that writes through t.Log
package testutil

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/csvjoin/internal/table"
	"github.com/stretchr/testify/require"
)

// LeftCSV is the left letter fixture, keyed on column "a".
const LeftCSV = `a,b,c,d,e
97,38,15,7,23
8,41,15,85,50
83,94,10,84,21
43,29,68,87,4
85,54,37,7,24
`

// RightCSV is the right letter fixture, keyed on column "m". Only key 83 is
// shared with LeftCSV.
const RightCSV = `l,m,n,o,p
12,18,9,54,76
24,92,61,42,9
26,72,62,14,23
53,61,49,92,26
16,83,53,41,75
`

// NewTable builds a table and fails the test if validation rejects it.
func NewTable(tb testing.TB, source, key string, header []string, rows ...[]string) *table.Table {
	tb.Helper()
	if rows == nil {
		rows = [][]string{}
	}
	tbl, err := table.New(header, rows, key, source)
	require.NoError(tb, err)
	return tbl
}

// LetterTables returns the letter fixtures as left (key "a") and right
// (key "m") tables.
func LetterTables(tb testing.TB) (*table.Table, *table.Table) {
	tb.Helper()
	left := NewTable(tb, "left.csv", "a",
		[]string{"a", "b", "c", "d", "e"},
		[]string{"97", "38", "15", "7", "23"},
		[]string{"8", "41", "15", "85", "50"},
		[]string{"83", "94", "10", "84", "21"},
		[]string{"43", "29", "68", "87", "4"},
		[]string{"85", "54", "37", "7", "24"},
	)
	right := NewTable(tb, "right.csv", "m",
		[]string{"l", "m", "n", "o", "p"},
		[]string{"12", "18", "9", "54", "76"},
		[]string{"24", "92", "61", "42", "9"},
		[]string{"26", "72", "62", "14", "23"},
		[]string{"53", "61", "49", "92", "26"},
		[]string{"16", "83", "53", "41", "75"},
	)
	return left, right
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteLetterFixtures writes LeftCSV and RightCSV into dir.
func WriteLetterFixtures(tb testing.TB, dir string) (string, string) {
	tb.Helper()
	return WriteFile(tb, dir, "left.csv", LeftCSV), WriteFile(tb, dir, "right.csv", RightCSV)
}

// ReadCSV reads every record of a comma separated file.
func ReadCSV(tb testing.TB, path string) [][]string {
	tb.Helper()
	f, err := os.Open(path)
	require.NoError(tb, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(tb, err)
	return records
}

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(tb testing.TB) *slog.Logger {
	tb.Helper()
	return slog.New(slog.NewTextHandler(testWriter{tb}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
