package sorter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bovan/import-sorter/internal/config"
	"github.com/bovan/import-sorter/internal/editor"
	"github.com/bovan/import-sorter/internal/event"
	"github.com/bovan/import-sorter/pkg/types"
)

type fakeResolver struct {
	cfg *types.Config
	err error
}

func (f fakeResolver) Resolve() (*types.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg != nil {
		return f.cfg, nil
	}
	cfg := config.Default()
	return &cfg, nil
}

type fakeProcessor struct {
	mu     sync.Mutex
	result *types.SortResult
	err    error
	stream []types.FileSortResult
	calls  int
}

func (f *fakeProcessor) SortImportData(ctx context.Context, uri, text string, cfg *types.Config) (*types.SortResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &types.SortResult{IsSortRequired: false}, nil
}

func (f *fakeProcessor) SortDirectory(ctx context.Context, dir string, cfg *types.Config) (<-chan types.FileSortResult, error) {
	ch := make(chan types.FileSortResult)
	go func() {
		defer close(ch)
		for _, res := range f.stream {
			select {
			case ch <- res:
				if res.Err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

type recordingStatus struct {
	mu     sync.Mutex
	record []string
}

func (s *recordingStatus) Show(text string)   { s.append("show:" + text) }
func (s *recordingStatus) Update(text string) { s.append("update:" + text) }
func (s *recordingStatus) Hide()              { s.append("hide") }

func (s *recordingStatus) append(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = append(s.record, entry)
}

func (s *recordingStatus) entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.record...)
}

type failingWorkspace struct{}

func (failingWorkspace) ApplyEdits(uri string, edits []types.TextEdit) error {
	return errors.New("host rejected the edit")
}

func tsDoc(text string) *editor.Document {
	return &editor.Document{URI: "file:///src/a.ts", LanguageID: LanguageTypeScript, Text: text}
}

func sortedResult() *types.SortResult {
	return &types.SortResult{
		IsSortRequired: true,
		RangesToDelete: []types.LineRange{
			{StartLine: 0, EndLine: 1},
			{StartLine: 1, EndLine: 2},
		},
		FirstLineNumberToInsertText: 0,
		SortedImportsText:           "import a;\nimport b;",
	}
}

func TestSortDocumentNoOpWhenNotRequired(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import a;\nimport b;\n\ncode\n")
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{}, Deps{Workspace: host, Notifier: host})
	require.NoError(t, c.SortDocument(context.Background(), doc))

	assert.Empty(t, host.Batches(doc.URI), "apply-edits must never be invoked")
	assert.Empty(t, host.Notices())
}

func TestSortDocumentDeletesThenInserts(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import b;\nimport a;\n\ncode\n")
	host.Open(*doc)

	proc := &fakeProcessor{result: sortedResult()}
	c := NewController(fakeResolver{}, proc, Deps{Workspace: host, Notifier: host})
	require.NoError(t, c.SortDocument(context.Background(), doc))

	batches := host.Batches(doc.URI)
	require.Len(t, batches, 2, "exactly one delete batch followed by one insert batch")
	assert.Len(t, batches[0], 2, "both deletes travel in the first batch")
	require.Len(t, batches[1], 1)
	assert.Equal(t, "import a;\nimport b;\n", batches[1][0].NewText)

	after, _ := host.Lookup(doc.URI)
	assert.Equal(t, "import a;\nimport b;\n\ncode\n", after.Text)
}

func TestSortDocumentIneligibleNoticesOnce(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := &editor.Document{URI: "file:///a.js", LanguageID: "javascript", Text: "code"}
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{result: sortedResult()}, Deps{Workspace: host, Notifier: host})
	err := c.SortDocument(context.Background(), doc)
	require.ErrorIs(t, err, ErrNotEligible)

	notices := host.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], LanguageTypeScript)
	assert.Contains(t, notices[0], LanguageTypeScriptReact)
	assert.Empty(t, host.Batches(doc.URI))
}

func TestSortDocumentAcceptsTypeScriptReact(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := &editor.Document{URI: "file:///a.tsx", LanguageID: LanguageTypeScriptReact, Text: "import b;\nimport a;\n\ncode\n"}
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{result: sortedResult()}, Deps{Workspace: host, Notifier: host})
	require.NoError(t, c.SortDocument(context.Background(), doc))
	assert.Len(t, host.Batches(doc.URI), 2)
}

func TestSortDocumentReportsResolveFailure(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("code")
	host.Open(*doc)

	c := NewController(fakeResolver{err: errors.New("unexpected end of JSON input")}, &fakeProcessor{}, Deps{Workspace: host, Notifier: host})
	err := c.SortDocument(context.Background(), doc)
	require.Error(t, err)

	notices := host.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "unexpected end of JSON input")
}

func TestSortDocumentReportsProcessorFailure(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("code")
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{err: errors.New("parse error at line 3")}, Deps{Workspace: host, Notifier: host})
	err := c.SortDocument(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, host.Notices()[0], "parse error at line 3")
}

func TestSortDocumentReportsEditApplicationFailure(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import b;\nimport a;\n\ncode\n")
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{result: sortedResult()}, Deps{Workspace: failingWorkspace{}, Notifier: host})
	err := c.SortDocument(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, host.Notices()[0], "host rejected the edit")
}

func enabledOnSaveConfig() *types.Config {
	cfg := config.Default()
	cfg.General.SortOnBeforeSave = true
	return &cfg
}

func TestSortOnSaveRegistersCombinedEdits(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import b;\nimport a;\n\ncode\n")
	host.Open(*doc)

	c := NewController(fakeResolver{cfg: enabledOnSaveConfig()}, &fakeProcessor{result: sortedResult()}, Deps{Workspace: host, Saves: host, Notifier: host})
	require.NoError(t, c.SortOnSave(context.Background(), doc))

	assert.Empty(t, host.Batches(doc.URI), "pre-save path must not apply edits directly")
	pending := host.PendingSaveEdits(doc.URI)
	require.Len(t, pending, 3, "two deletes and the insert in one list")

	require.NoError(t, host.Save(doc.URI))
	after, _ := host.Lookup(doc.URI)
	assert.Equal(t, "import a;\nimport b;\n\ncode\n", after.Text)
}

func TestSortOnSaveGatedOnFlag(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import b;\nimport a;\n")
	host.Open(*doc)

	proc := &fakeProcessor{result: sortedResult()}
	c := NewController(fakeResolver{}, proc, Deps{Workspace: host, Saves: host, Notifier: host})
	require.NoError(t, c.SortOnSave(context.Background(), doc))

	assert.Empty(t, host.PendingSaveEdits(doc.URI))
	assert.Zero(t, proc.calls, "sort data is not computed when the flag is off")
}

func TestSortOnSaveSilentOnUnrelatedDocuments(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := &editor.Document{URI: "file:///notes.md", LanguageID: "markdown", Text: "# notes"}
	host.Open(*doc)

	c := NewController(fakeResolver{cfg: enabledOnSaveConfig()}, &fakeProcessor{result: sortedResult()}, Deps{Workspace: host, Saves: host, Notifier: host})
	require.NoError(t, c.SortOnSave(context.Background(), doc))

	assert.Empty(t, host.Notices(), "autosave of unrelated files must stay quiet")
	assert.Empty(t, host.PendingSaveEdits(doc.URI))
}

func TestSortDirectoryCountsMonotonically(t *testing.T) {
	status := &recordingStatus{}
	bus := event.NewBus()
	defer bus.Close()

	var counts []int
	unsub := bus.Subscribe(event.BatchFile, func(e event.Event) {
		counts = append(counts, e.Data.(event.BatchFileData).Count)
	})
	defer unsub()

	done := make(chan event.Event, 1)
	unsubDone := bus.Subscribe(event.BatchDone, func(e event.Event) { done <- e })
	defer unsubDone()

	proc := &fakeProcessor{stream: []types.FileSortResult{
		{FilePath: "a.ts", Changed: true},
		{FilePath: "b.ts"},
		{FilePath: "c.tsx", Changed: true},
	}}

	c := NewController(fakeResolver{}, proc, Deps{Status: status, Bus: bus})
	c.hideDelay = 10 * time.Millisecond

	n, err := c.SortDirectory(context.Background(), "/src")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, counts)

	entries := status.entries()
	require.GreaterOrEqual(t, len(entries), 5)
	assert.Equal(t, "show:Sorting imports: 0", entries[0])
	assert.Equal(t, "update:Sorting imports: 3", entries[3])
	assert.Equal(t, "update:Sorted imports in 3 files", entries[4])

	select {
	case e := <-done:
		assert.Equal(t, 3, e.Data.(event.BatchDoneData).Total)
	case <-time.After(time.Second):
		t.Fatal("missing batch.done event")
	}

	assert.Eventually(t, func() bool {
		for _, e := range status.entries() {
			if e == "hide" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond, "terminal status must auto-hide")
}

func TestSortDirectoryAbortsOnFirstError(t *testing.T) {
	status := &recordingStatus{}
	bus := event.NewBus()
	defer bus.Close()

	var batchErr *event.BatchErrorData
	unsub := bus.Subscribe(event.BatchError, func(e event.Event) {
		data := e.Data.(event.BatchErrorData)
		batchErr = &data
	})
	defer unsub()

	proc := &fakeProcessor{stream: []types.FileSortResult{
		{FilePath: "a.ts", Changed: true},
		{FilePath: "broken.ts", Err: errors.New("unterminated import")},
		{FilePath: "never.ts"},
	}}

	c := NewController(fakeResolver{}, proc, Deps{Status: status, Bus: bus})
	n, err := c.SortDirectory(context.Background(), "/src")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated import")
	assert.Equal(t, 1, n)

	entries := status.entries()
	assert.Equal(t, "update:Sorting imports: 1", entries[len(entries)-1],
		"indicator stays at the last successful count")
	assert.NotContains(t, entries, "hide")

	require.NotNil(t, batchErr)
	assert.Equal(t, 1, batchErr.Count)
	assert.Equal(t, "broken.ts", batchErr.FilePath)
}

func TestSortDirectoryHonorsCancellation(t *testing.T) {
	stream := make([]types.FileSortResult, 100)
	for i := range stream {
		stream[i] = types.FileSortResult{FilePath: fmt.Sprintf("f%d.ts", i)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	bus := event.NewBus()
	defer bus.Close()

	seen := 0
	c := NewController(fakeResolver{}, &fakeProcessor{stream: stream}, Deps{Bus: bus})
	unsub := bus.Subscribe(event.BatchFile, func(e event.Event) {
		seen++
		if seen == 2 {
			cancel()
		}
	})
	defer unsub()

	n, err := c.SortDirectory(ctx, "/src")
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, n, 100)
}

func TestSortDirectoryResolvesOnce(t *testing.T) {
	// Resolution happens a single time for the whole batch.
	calls := 0
	r := countingResolver{calls: &calls}
	c := NewController(r, &fakeProcessor{stream: []types.FileSortResult{{FilePath: "a.ts"}, {FilePath: "b.ts"}}}, Deps{})

	_, err := c.SortDirectory(context.Background(), "/src")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

type countingResolver struct{ calls *int }

func (r countingResolver) Resolve() (*types.Config, error) {
	*r.calls++
	cfg := config.Default()
	return &cfg, nil
}

func TestPreviewProducesDiff(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import b;\nimport a;\n\ncode\n")
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{result: sortedResult()}, Deps{Workspace: host, Notifier: host})
	diff, err := c.Preview(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(diff, "--- "+doc.URI), "diff carries file headers")
	assert.Contains(t, diff, "@@")

	after, _ := host.Lookup(doc.URI)
	assert.Equal(t, doc.Text, after.Text, "preview must not touch the document")
}

func TestPreviewEmptyWhenSorted(t *testing.T) {
	host := editor.NewMemoryHost()
	doc := tsDoc("import a;\nimport b;\n")
	host.Open(*doc)

	c := NewController(fakeResolver{}, &fakeProcessor{}, Deps{Workspace: host})
	diff, err := c.Preview(context.Background(), doc)
	require.NoError(t, err)
	assert.Empty(t, diff)
}
