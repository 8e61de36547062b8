// Package editor defines the host-editor contract the sorter controller
// commits edits through, plus an in-memory host implementation.
//
// The real host sits on the other side of the HTTP API; the controller only
// ever sees these narrow capabilities. Documents are value snapshots: the
// host owns the live buffers.
package editor

import "github.com/bovan/import-sorter/pkg/types"

// Document is a snapshot of one open text document.
type Document struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Text       string `json:"text"`
}

// Registry looks up open documents by URI.
type Registry interface {
	Lookup(uri string) (Document, bool)
}

// Workspace applies edit batches to live documents. A batch is atomic: every
// edit in it is positioned against the document as it was when the call was
// made.
type Workspace interface {
	ApplyEdits(uri string, edits []types.TextEdit) error
}

// SaveBuffer is the save-interception mechanism: edits registered here are
// committed by the host as part of the save operation itself, so the file on
// disk never holds an intermediate unsorted state.
type SaveBuffer interface {
	RegisterSaveEdits(uri string, edits []types.TextEdit)
}

// StatusIndicator is the host's transient progress surface.
type StatusIndicator interface {
	Show(text string)
	Update(text string)
	Hide()
}

// Notifier posts one-line user-visible messages.
type Notifier interface {
	Notify(message string)
}
