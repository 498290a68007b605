/*
  File: rewriter.go
  Purpose: Byte-range splicing of call-site replacements and the JS map.
  Author: taikocss project
  Notes: Splicing preserves untouched source bytes exactly, so formatting
         and comments survive. The emitted map anchors every output line
         inside unchanged spans and maps each replacement to its original
         call-site start.
*/

package rewriter

import (
	"fmt"
	"sort"
	"strings"

	"taikocss/internal/position"
	"taikocss/internal/sourcemap"
)

// Edit replaces the half-open byte range [Start, End) of the original
// source with Replacement.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// Apply splices the edits into the source. Edits must not overlap; they
// are applied in ascending Start order.
func Apply(source []byte, edits []Edit) string {
	sorted := sortEdits(edits)
	var sb strings.Builder
	pos := 0
	for _, edit := range sorted {
		sb.Write(source[pos:edit.Start])
		sb.WriteString(edit.Replacement)
		pos = edit.End
	}
	sb.Write(source[pos:])
	return sb.String()
}

// BuildMap emits a V3 map for the spliced output: segments at the start of
// every output line within unchanged spans, plus one segment per
// replacement pointing at the original call-site start.
func BuildMap(filename string, source []byte, edits []Edit) (string, error) {
	sorted := sortEdits(edits)
	origPos := position.NewMap(source)
	builder := sourcemap.NewBuilder("", filename, string(source))

	genLine := 0
	genCol := 0
	orig := 0

	addMapping := func(origOffset int) {
		line, col := origPos.Lookup(origOffset)
		builder.AddMapping(sourcemap.Mapping{
			GeneratedLine:   genLine,
			GeneratedColumn: genCol,
			OriginalLine:    int(line) - 1,
			OriginalColumn:  int(col) - 1,
		})
	}

	copySpan := func(from, to int) {
		if from < to {
			addMapping(from)
		}
		for i := from; i < to; i++ {
			if source[i] == '\n' {
				genLine++
				genCol = 0
				if i+1 < to {
					addMapping(i + 1)
				}
			} else {
				genCol++
			}
		}
	}

	for _, edit := range sorted {
		copySpan(orig, edit.Start)
		addMapping(edit.Start)
		// Replacements are single-line string literals; advance columns
		// only.
		genCol += len(edit.Replacement)
		orig = edit.End
	}
	copySpan(orig, len(source))

	return builder.String()
}

// sortEdits returns the edits in ascending start order without mutating
// the caller's slice.
func sortEdits(edits []Edit) []Edit {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return sorted
}

// Validate checks that edits are in-bounds and non-overlapping; the
// transform calls it before splicing in case a walker bug produced
// overlapping call sites.
func Validate(sourceLen int, edits []Edit) error {
	sorted := sortEdits(edits)
	prevEnd := 0
	for _, edit := range sorted {
		if edit.Start < 0 || edit.End > sourceLen || edit.Start > edit.End {
			return fmt.Errorf("edit range [%d,%d) out of bounds for source of %d bytes", edit.Start, edit.End, sourceLen)
		}
		if edit.Start < prevEnd {
			return fmt.Errorf("edit at %d overlaps previous edit ending at %d", edit.Start, prevEnd)
		}
		prevEnd = edit.End
	}
	return nil
}
