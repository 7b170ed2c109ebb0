package testutil_test

import (
	"testing"

	"github.com/paveg/csvjoin/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLetterTables(t *testing.T) {
	left, right := testutil.LetterTables(t)

	assert.Equal(t, 5, left.Len())
	assert.Equal(t, 5, right.Len())
	assert.Equal(t, 0, left.KeyIndex())
	assert.Equal(t, 1, right.KeyIndex())
	assert.True(t, left.Contains("83"))
	assert.True(t, right.Contains("83"))
}

func TestWriteAndReadCSV(t *testing.T) {
	dir := t.TempDir()
	leftPath, rightPath := testutil.WriteLetterFixtures(t, dir)

	left := testutil.ReadCSV(t, leftPath)
	right := testutil.ReadCSV(t, rightPath)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, left[0])
	assert.Len(t, left, 6)
	assert.Equal(t, []string{"16", "83", "53", "41", "75"}, right[5])
}

func TestNewTestLogger(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	logger.Info("fixture loaded", "rows", 5)
}
