package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlagColumn(t *testing.T) {
	tests := []struct {
		token string
		want  FlagColumn
		ok    bool
	}{
		{token: "show_in_lists", want: ShowInListsColumn, ok: true},
		{token: "is_tracked", want: IsTrackedColumn, ok: true},
		{token: "IS_TRACKED", ok: false},
		{token: " is_tracked", ok: false},
		{token: "is_tracked ", ok: false},
		{token: "name", ok: false},
		{token: "id", ok: false},
		{token: "is_tracked`=1; DROP TABLE features; --", ok: false},
		{token: "show_in_lists=1,name", ok: false},
		{token: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseFlagColumn(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagColumnString(t *testing.T) {
	assert.Equal(t, "show_in_lists", ShowInListsColumn.String())
	assert.Equal(t, "is_tracked", IsTrackedColumn.String())
	assert.Equal(t, "unknown", FlagColumn(0).String())
}

func TestFeatureIsBlank(t *testing.T) {
	assert.True(t, (&Feature{Id: 4}).IsBlank())
	assert.False(t, (&Feature{Id: 4, Name: "MATLAB"}).IsBlank())
	assert.False(t, (&Feature{Id: 4, IsTracked: true}).IsBlank())
}
