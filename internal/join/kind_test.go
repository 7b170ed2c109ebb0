package join_test

import (
	"encoding/json"
	"testing"

	joinerrors "github.com/paveg/csvjoin/internal/errors"
	"github.com/paveg/csvjoin/internal/join"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		token    string
		expected join.Kind
	}{
		{"left", join.Left},
		{"right", join.Right},
		{"inner", join.Inner},
		{"full", join.Full},
		{"FULL", join.Full},
		{" Inner ", join.Inner},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			kind, err := join.ParseKind(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	for _, token := range []string{"outer", "cross", "left outer", "l", "", "  ", "\t"} {
		t.Run(token, func(t *testing.T) {
			_, err := join.ParseKind(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, joinerrors.ErrUnsupportedJoinKind)
			assert.ErrorIs(t, err, &joinerrors.JoinError{Kind: joinerrors.UnsupportedJoinKind, Value: token})
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, []string{"left", "right", "inner", "full"}, join.KindNames())
	for i, kind := range join.Kinds() {
		assert.Equal(t, join.KindNames()[i], kind.String())
		assert.True(t, kind.Valid())
	}
	assert.Equal(t, "unknown", join.Kind(9).String())
	assert.False(t, join.Kind(9).Valid())
}

func TestKindText(t *testing.T) {
	var payload struct {
		Kind join.Kind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"right"}`), &payload))
	assert.Equal(t, join.Right, payload.Kind)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"right"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"outer"}`), &payload))
}
