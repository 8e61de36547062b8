package types

// Position is a location in a text document, zero-based. Character offsets
// count bytes within the line.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a span in a text document. End is exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextEdit replaces the text covered by Range with NewText. A zero-width
// range is an insertion.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// LineRange is the processor's wire form of a delete span.
type LineRange struct {
	StartLine      int `json:"startLine"`
	StartCharacter int `json:"startCharacter"`
	EndLine        int `json:"endLine"`
	EndCharacter   int `json:"endCharacter"`
}

// ToRange converts a LineRange to a Range.
func (lr LineRange) ToRange() Range {
	return Range{
		Start: Position{Line: lr.StartLine, Character: lr.StartCharacter},
		End:   Position{Line: lr.EndLine, Character: lr.EndCharacter},
	}
}

// SortResult is the import processor's verdict for one document: whether a
// sort is needed and, if so, the edit data to perform it. The delete ranges
// never overlap and are expressed against the original document together
// with the insertion as one atomic edit set.
type SortResult struct {
	IsSortRequired              bool        `json:"isSortRequired"`
	RangesToDelete              []LineRange `json:"rangesToDelete,omitempty"`
	FirstLineNumberToInsertText int         `json:"firstLineNumberToInsertText"`
	SortedImportsText           string      `json:"sortedImportsText,omitempty"`
}

// FileSortResult is one element of a directory batch stream: the outcome of
// sorting a single file. Err is set when processing that file failed; the
// stream ends after the first such element.
type FileSortResult struct {
	FilePath string `json:"filePath"`
	Changed  bool   `json:"changed"`
	Err      error  `json:"-"`
}
