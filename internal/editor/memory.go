package editor

import (
	"fmt"
	"sync"

	"github.com/bovan/import-sorter/pkg/types"
)

// MemoryHost is a complete in-process host: a document registry, workspace,
// save buffer, status indicator, and notifier backed by plain memory. The
// HTTP handlers use one per request to stage the caller's document, and the
// controller tests assert against its recorded batches.
type MemoryHost struct {
	mu      sync.Mutex
	docs    map[string]Document
	pending map[string][]types.TextEdit
	batches map[string][][]types.TextEdit
	notices []string

	statusText    string
	statusVisible bool
}

// NewMemoryHost creates an empty host.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		docs:    make(map[string]Document),
		pending: make(map[string][]types.TextEdit),
		batches: make(map[string][][]types.TextEdit),
	}
}

// Open stages a document snapshot in the registry, replacing any previous
// snapshot at the same URI.
func (h *MemoryHost) Open(doc Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.docs[doc.URI] = doc
}

// Lookup implements Registry.
func (h *MemoryHost) Lookup(uri string) (Document, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	doc, ok := h.docs[uri]
	return doc, ok
}

// ApplyEdits implements Workspace: one atomic batch against the current text.
func (h *MemoryHost) ApplyEdits(uri string, edits []types.TextEdit) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, ok := h.docs[uri]
	if !ok {
		return fmt.Errorf("no document open at %s", uri)
	}

	text, err := ApplyEditsToText(doc.Text, edits)
	if err != nil {
		return err
	}

	doc.Text = text
	h.docs[uri] = doc
	h.batches[uri] = append(h.batches[uri], edits)
	return nil
}

// Batches returns the edit batches applied to a document, in order.
func (h *MemoryHost) Batches(uri string) [][]types.TextEdit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]types.TextEdit(nil), h.batches[uri]...)
}

// RegisterSaveEdits implements SaveBuffer.
func (h *MemoryHost) RegisterSaveEdits(uri string, edits []types.TextEdit) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[uri] = append(h.pending[uri], edits...)
}

// PendingSaveEdits returns the edits registered for the next save of uri.
func (h *MemoryHost) PendingSaveEdits(uri string) []types.TextEdit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]types.TextEdit(nil), h.pending[uri]...)
}

// Save commits any registered save edits as one atomic batch and clears
// them, the way a host folds intercepted edits into the save itself.
func (h *MemoryHost) Save(uri string) error {
	h.mu.Lock()
	edits := h.pending[uri]
	delete(h.pending, uri)
	h.mu.Unlock()

	if len(edits) == 0 {
		return nil
	}
	return h.ApplyEdits(uri, edits)
}

// Notify implements Notifier.
func (h *MemoryHost) Notify(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notices = append(h.notices, message)
}

// Notices returns every message posted so far.
func (h *MemoryHost) Notices() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.notices...)
}

// Show implements StatusIndicator.
func (h *MemoryHost) Show(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statusText = text
	h.statusVisible = true
}

// Update implements StatusIndicator.
func (h *MemoryHost) Update(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statusText = text
}

// Hide implements StatusIndicator.
func (h *MemoryHost) Hide() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statusVisible = false
}

// Status returns the current indicator text and visibility.
func (h *MemoryHost) Status() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statusText, h.statusVisible
}
