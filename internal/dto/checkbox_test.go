package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckboxJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{"show_in_lists": "on"}`, true},
		{`{"show_in_lists": true}`, true},
		{`{"show_in_lists": false}`, false},
		{`{"show_in_lists": "off"}`, false},
		{`{"show_in_lists": "1"}`, false},
		{`{"show_in_lists": 1}`, false},
		{`{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var req SaveFeatureRequest
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &req))
			assert.Equal(t, tt.want, req.ShowInLists.Bool())
		})
	}
}

func TestCheckboxText(t *testing.T) {
	var c Checkbox
	require.NoError(t, c.UnmarshalText([]byte("on")))
	assert.True(t, c.Bool())

	require.NoError(t, c.UnmarshalText([]byte("true")))
	assert.False(t, c.Bool())
}
