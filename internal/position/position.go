/*
  File: position.go
  Purpose: Byte-offset to line/column index for diagnostic positions.
  Author: taikocss project
  Notes: Built once per transform; lookups are binary searches over the
         line-start table.
*/

package position

import "sort"

// Map converts byte offsets in a source text into 1-based line and column
// numbers. It is immutable after construction.
type Map struct {
	lineStarts []int // byte offset of the first byte of each line
	size       int
}

// NewMap scans source once and records the byte offset of every line start.
func NewMap(source []byte) *Map {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Map{lineStarts: starts, size: len(source)}
}

// Lookup returns the 1-based line and column for a byte offset. Offsets past
// the end of the source clamp to the final position.
func (m *Map) Lookup(offset int) (line, column uint32) {
	if offset < 0 {
		offset = 0
	}
	if offset > m.size {
		offset = m.size
	}
	// Find the last line start at or before offset.
	idx := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
	return uint32(idx) + 1, uint32(offset-m.lineStarts[idx]) + 1
}

// LineCount returns the number of lines in the indexed source.
func (m *Map) LineCount() int {
	return len(m.lineStarts)
}
