package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bovan/import-sorter/pkg/types"
)

// ApplyEditsToText applies one atomic batch of edits to a document snapshot.
// All ranges are positioned against the input text; edits must not overlap.
// A zero-width edit whose position equals another edit's start is legal (the
// delete-block-then-insert-at-its-head shape) and the inserted text ends up
// ahead of whatever the neighboring edit left behind.
func ApplyEditsToText(text string, edits []types.TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	type span struct {
		start, end int
		newText    string
	}

	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		start, err := offsetOf(text, e.Range.Start)
		if err != nil {
			return "", err
		}
		end, err := offsetOf(text, e.Range.End)
		if err != nil {
			return "", err
		}
		if end < start {
			return "", fmt.Errorf("invalid range: end %v before start %v", e.Range.End, e.Range.Start)
		}
		spans = append(spans, span{start: start, end: end, newText: e.NewText})
	}

	asc := make([]span, len(spans))
	copy(asc, spans)
	sort.Slice(asc, func(i, j int) bool {
		if asc[i].start != asc[j].start {
			return asc[i].start < asc[j].start
		}
		return asc[i].end < asc[j].end
	})
	for i := 1; i < len(asc); i++ {
		if asc[i].start < asc[i-1].end {
			return "", fmt.Errorf("overlapping edits at offset %d", asc[i].start)
		}
	}

	// Apply back to front so earlier offsets stay valid. On equal starts the
	// wider span goes first, which puts an insertion ahead of the text that
	// survives its neighboring delete.
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start > spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	for _, sp := range spans {
		text = text[:sp.start] + sp.newText + text[sp.end:]
	}

	return text, nil
}

// offsetOf converts a line/character position to a byte offset. The position
// one line past the final line, at character zero, addresses end-of-text so
// insertions may append.
func offsetOf(text string, pos types.Position) (int, error) {
	if pos.Line < 0 || pos.Character < 0 {
		return 0, fmt.Errorf("negative position %d:%d", pos.Line, pos.Character)
	}

	lineStart := 0
	for line := 0; line < pos.Line; line++ {
		idx := strings.IndexByte(text[lineStart:], '\n')
		if idx < 0 {
			if pos.Line == line+1 && pos.Character == 0 {
				return len(text), nil
			}
			return 0, fmt.Errorf("line %d out of range", pos.Line)
		}
		lineStart += idx + 1
	}

	off := lineStart + pos.Character
	if off > len(text) {
		return 0, fmt.Errorf("position %d:%d out of range", pos.Line, pos.Character)
	}
	return off, nil
}
