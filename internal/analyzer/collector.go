package analyzer

import "sort"

type dedupKey struct {
	rule    string
	start   int
	end     int
	message string
}

type ownedEdit struct {
	owner int
	edit  Edit
}

// Collector accumulates diagnostics for one pass over one file.
// Accepted fixes never overlap: the first fix to claim a range keeps it
// and later overlapping fixes are dropped, leaving their diagnostics report-only.
type Collector struct {
	size     int
	diags    []Diagnostic
	seen     map[dedupKey]int
	accepted []ownedEdit
}

// NewCollector creates a collector for a source of the given byte size
func NewCollector(size int) *Collector {
	return &Collector{
		size: size,
		seen: make(map[dedupKey]int),
	}
}

// Report records d and returns its id. An exact duplicate of an earlier
// diagnostic is dropped and the earlier id is returned.
func (c *Collector) Report(d Diagnostic) int {
	key := dedupKey{rule: d.Rule, start: d.Pos.Offset, end: d.EndPos.Offset, message: d.Message}
	if id, ok := c.seen[key]; ok {
		return id
	}

	id := len(c.diags)
	if d.Fix != nil {
		if len(d.Fix.Edits) == 0 || !d.Fix.selfConsistent(c.size) || c.overlaps(d.Fix) {
			d.Fix = nil
		} else {
			for _, e := range d.Fix.Edits {
				c.accepted = append(c.accepted, ownedEdit{owner: id, edit: e})
			}
		}
	}

	c.diags = append(c.diags, d)
	c.seen[key] = id
	return id
}

func (c *Collector) overlaps(f *Fix) bool {
	for _, e := range f.Edits {
		for _, a := range c.accepted {
			if Conflicts(a.edit, e) {
				return true
			}
		}
	}
	return false
}

// Revoke drops the fix of a reported diagnostic and releases its ranges
func (c *Collector) Revoke(id int) {
	if id < 0 || id >= len(c.diags) || c.diags[id].Fix == nil {
		return
	}
	c.diags[id].Fix = nil

	kept := c.accepted[:0]
	for _, a := range c.accepted {
		if a.owner != id {
			kept = append(kept, a)
		}
	}
	c.accepted = kept
}

// Len returns the number of recorded diagnostics
func (c *Collector) Len() int {
	return len(c.diags)
}

// Diagnostics returns the recorded diagnostics ordered by start offset.
// Diagnostics at the same offset keep their report order.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos.Offset < out[j].Pos.Offset
	})
	return out
}
