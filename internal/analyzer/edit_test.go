package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflicts(t *testing.T) {
	tests := []struct {
		name string
		a, b Edit
		want bool
	}{
		{"disjoint", Edit{Start: 0, End: 2}, Edit{Start: 3, End: 5}, false},
		{"touching", Edit{Start: 0, End: 3}, Edit{Start: 3, End: 5}, false},
		{"overlapping", Edit{Start: 0, End: 4}, Edit{Start: 3, End: 5}, true},
		{"nested", Edit{Start: 0, End: 10}, Edit{Start: 3, End: 5}, true},
		{"two inserts same point", Edit{Start: 3, End: 3}, Edit{Start: 3, End: 3}, false},
		{"insert inside", Edit{Start: 4, End: 4}, Edit{Start: 3, End: 5}, true},
		{"insert at start", Edit{Start: 3, End: 3}, Edit{Start: 3, End: 5}, true},
		{"insert at end", Edit{Start: 5, End: 5}, Edit{Start: 3, End: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.a, tt.b))
			assert.Equal(t, tt.want, Conflicts(tt.b, tt.a), "conflict must be symmetric")
		})
	}
}

func TestSplice(t *testing.T) {
	out, err := Splice("<a slot=\"x\" scope=\"y\">", []Edit{
		{Start: 12, End: 21, NewText: ""},
		{Start: 3, End: 11, NewText: "v-slot:x=\"y\""},
	})
	require.NoError(t, err)
	assert.Equal(t, "<a v-slot:x=\"y\" >", out)
}

func TestSpliceInsertOrder(t *testing.T) {
	out, err := Splice("ab", []Edit{
		{Start: 1, End: 1, NewText: "1"},
		{Start: 1, End: 1, NewText: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a12b", out)
}

func TestSpliceRejectsOverlap(t *testing.T) {
	_, err := Splice("abcdef", []Edit{
		{Start: 0, End: 4, NewText: "x"},
		{Start: 2, End: 6, NewText: "y"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlappingEdits)
}

func TestSpliceRejectsOutOfRange(t *testing.T) {
	_, err := Splice("abc", []Edit{{Start: 2, End: 9}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOverlappingEdits)
}

func TestSpliceNoEdits(t *testing.T) {
	out, err := Splice("same", nil)
	require.NoError(t, err)
	assert.Equal(t, "same", out)
}
