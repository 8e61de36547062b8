package sorter

import (
	"github.com/bovan/import-sorter/internal/editor"
	"github.com/bovan/import-sorter/pkg/types"
)

// EditCommitter commits one sort result's edits through a host protocol.
// The two implementations carry the two commit protocols; orchestration in
// the controller stays identical either way.
type EditCommitter interface {
	Commit(uri string, deletes []types.TextEdit, insert types.TextEdit) error
}

// applyCommitter commits straight to the live document in two sequential
// batches: all deletes settle first, then the insert goes in against the
// updated document. Issuing both in one batch could invalidate ranges that
// target overlapping line numbers.
type applyCommitter struct {
	workspace editor.Workspace
}

func (a applyCommitter) Commit(uri string, deletes []types.TextEdit, insert types.TextEdit) error {
	if len(deletes) > 0 {
		if err := a.workspace.ApplyEdits(uri, deletes); err != nil {
			return err
		}
	}
	return a.workspace.ApplyEdits(uri, []types.TextEdit{insert})
}

// saveCommitter registers the deletes and the insert as one combined edit
// list with the save-interception buffer. The host commits the list
// atomically as part of the save operation, before the save completes.
type saveCommitter struct {
	buffer editor.SaveBuffer
}

func (s saveCommitter) Commit(uri string, deletes []types.TextEdit, insert types.TextEdit) error {
	edits := make([]types.TextEdit, 0, len(deletes)+1)
	edits = append(edits, deletes...)
	edits = append(edits, insert)
	s.buffer.RegisterSaveEdits(uri, edits)
	return nil
}

// EditsFromResult returns a sort result's full edit list: every delete
// followed by the insertion of the sorted block. The list is safe to apply
// as one atomic batch against the text it was computed from.
func EditsFromResult(res *types.SortResult) []types.TextEdit {
	deletes, insert := editsFromResult(res)
	return append(deletes, insert)
}

// editsFromResult converts a SortResult into its delete edits plus the
// single insertion of the sorted block (with a trailing line break) at the
// computed line.
func editsFromResult(res *types.SortResult) ([]types.TextEdit, types.TextEdit) {
	deletes := make([]types.TextEdit, 0, len(res.RangesToDelete))
	for _, lr := range res.RangesToDelete {
		deletes = append(deletes, types.TextEdit{Range: lr.ToRange()})
	}

	at := types.Position{Line: res.FirstLineNumberToInsertText, Character: 0}
	insert := types.TextEdit{
		Range:   types.Range{Start: at, End: at},
		NewText: res.SortedImportsText + "\n",
	}
	return deletes, insert
}
