package analyzer

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOverlappingEdits is returned when edits passed to Splice overlap
var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces the half-open byte range [Start, End) with NewText.
// Start == End is an insertion.
type Edit struct {
	Start   int
	End     int
	NewText string
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d,%d)=%q", e.Start, e.End, e.NewText)
}

// Fix is a set of edits that must be applied together
type Fix struct {
	Title string
	Edits []Edit
}

// Conflicts reports whether two edits touch the same text.
// Two insertions never conflict; an insertion conflicts with a replacement
// only when it falls strictly inside or at the start of it.
func Conflicts(a, b Edit) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// selfConsistent reports whether the edits of one fix are in bounds and disjoint
func (f *Fix) selfConsistent(size int) bool {
	for i, e := range f.Edits {
		if e.Start < 0 || e.End < e.Start || e.End > size {
			return false
		}
		for _, o := range f.Edits[i+1:] {
			if Conflicts(e, o) {
				return false
			}
		}
	}
	return true
}

// Splice applies edits to source. Edits are sorted by position and applied
// back to front so earlier offsets stay valid.
func Splice(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return "", fmt.Errorf("edit %s out of range for %d bytes", e, len(source))
		}
		for _, prev := range sorted[:i] {
			if Conflicts(prev, e) {
				return "", fmt.Errorf("%w: %s and %s", ErrOverlappingEdits, prev, e)
			}
		}
	}

	out := source
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		out = out[:e.Start] + e.NewText + out[e.End:]
	}
	return out, nil
}
