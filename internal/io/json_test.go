package io_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paveg/csvjoin/internal/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter(t *testing.T) {
	t.Run("writes a header/rows document", func(t *testing.T) {
		var buf bytes.Buffer
		err := io.NewJSONWriter(&buf).Write(
			[]string{"Id", "Name"},
			[][]string{{"1", "Joe"}, {"22", "null"}},
		)
		require.NoError(t, err)
		assert.JSONEq(t, `{"header":["Id","Name"],"rows":[["1","Joe"],["22","null"]]}`, buf.String())
	})

	t.Run("empty body is an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, io.NewJSONWriter(&buf).Write([]string{"a"}, nil))
		assert.JSONEq(t, `{"header":["a"],"rows":[]}`, buf.String())
	})

	t.Run("does not escape markup characters", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, io.NewJSONWriter(&buf).Write([]string{"a"}, [][]string{{"<b>&"}}))
		assert.Contains(t, buf.String(), "<b>&")
	})
}

func TestJSONReader(t *testing.T) {
	t.Run("reads a header/rows document", func(t *testing.T) {
		doc := `{"header":["k","v"],"rows":[["1","x"],["2","y","extra"]]}`

		records, err := io.NewJSONReader(strings.NewReader(doc)).Read()
		require.NoError(t, err)
		assert.Equal(t, []string{"k", "v"}, records.Header)
		assert.Equal(t, [][]string{{"1", "x"}, {"2", "y", "extra"}}, records.Rows)
	})

	t.Run("missing rows yields empty body", func(t *testing.T) {
		records, err := io.NewJSONReader(strings.NewReader(`{"header":["k"]}`)).Read()
		require.NoError(t, err)
		assert.NotNil(t, records.Rows)
		assert.Empty(t, records.Rows)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		_, err := io.NewJSONReader(strings.NewReader(`{"rows":[["1"]]}`)).Read()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header")
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := io.NewJSONReader(strings.NewReader(`{"header":["k"],"columns":[]}`)).Read()
		assert.Error(t, err)
	})

	t.Run("non-string cells are rejected", func(t *testing.T) {
		_, err := io.NewJSONReader(strings.NewReader(`{"header":["k"],"rows":[[1]]}`)).Read()
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		header := []string{"a", "b"}
		rows := [][]string{{"1", ""}, {"2", "z"}}

		var buf bytes.Buffer
		require.NoError(t, io.NewJSONWriter(&buf).Write(header, rows))

		records, err := io.NewJSONReader(&buf).Read()
		require.NoError(t, err)
		assert.Equal(t, header, records.Header)
		assert.Equal(t, rows, records.Rows)
	})
}
