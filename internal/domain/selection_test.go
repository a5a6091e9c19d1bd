package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSelection(t *testing.T) {
	tests := []struct {
		name     string
		periods  []Period
		expected []Period
		empty    bool
	}{
		{
			name:     "Empty",
			periods:  nil,
			expected: []Period{},
			empty:    true,
		},
		{
			name:     "Sorted Output",
			periods:  []Period{"2011-02", "2010-12", "2011-01"},
			expected: []Period{"2010-12", "2011-01", "2011-02"},
		},
		{
			name:     "Duplicates Collapse",
			periods:  []Period{"2011-01", "2011-01"},
			expected: []Period{"2011-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewFilterSelection(tt.periods...)

			assert.Equal(t, tt.expected, sel.Periods())
			assert.Equal(t, len(tt.expected), sel.Len())
			assert.Equal(t, tt.empty, sel.IsEmpty())
			for _, p := range tt.periods {
				assert.True(t, sel.Contains(p))
			}
		})
	}
}

func TestFilterSelection_ZeroValueIsEmpty(t *testing.T) {
	var sel FilterSelection

	assert.True(t, sel.IsEmpty())
	assert.False(t, sel.Contains("2010-12"))
	assert.Empty(t, sel.Periods())
}

func TestFilterSelection_IsNotAliasedToInput(t *testing.T) {
	periods := []Period{"2010-12"}
	sel := NewFilterSelection(periods...)

	periods[0] = "2011-01"

	assert.True(t, sel.Contains("2010-12"))
	assert.False(t, sel.Contains("2011-01"))
}
