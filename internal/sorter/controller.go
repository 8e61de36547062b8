package sorter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bovan/import-sorter/internal/editor"
	"github.com/bovan/import-sorter/internal/event"
	"github.com/bovan/import-sorter/internal/logging"
	"github.com/bovan/import-sorter/pkg/types"
)

// statusHideDelay is how long the terminal batch status stays visible.
const statusHideDelay = 3 * time.Second

// ErrNotEligible is returned when a document's language is not one of the
// recognized variants and the caller asked for a loud mismatch. The user
// notice has already been posted by the time it is returned.
var ErrNotEligible = errors.New("document not eligible for import sorting")

// ConfigResolver produces the effective configuration for one trigger.
type ConfigResolver interface {
	Resolve() (*types.Config, error)
}

// ImportProcessor is the external import-processing service. The controller
// never inspects file contents itself: text goes in, edit data comes out.
// SortDirectory yields one element per file processed; the element order is
// discovery order, and the stream ends after its first error element.
type ImportProcessor interface {
	SortImportData(ctx context.Context, uri, text string, cfg *types.Config) (*types.SortResult, error)
	SortDirectory(ctx context.Context, dir string, cfg *types.Config) (<-chan types.FileSortResult, error)
}

// Deps are the host capabilities a Controller commits through. Status,
// Notifier, and Bus are optional; a nil value silences that surface.
type Deps struct {
	Workspace editor.Workspace
	Saves     editor.SaveBuffer
	Status    editor.StatusIndicator
	Notifier  editor.Notifier
	Bus       *event.Bus
}

// Controller turns sort data into committed edits. Configuration is resolved
// fresh on every trigger, so each action sees the latest editor and on-disk
// state.
type Controller struct {
	resolver  ConfigResolver
	processor ImportProcessor
	deps      Deps
	hideDelay time.Duration
}

// NewController creates a controller over a resolver, a processor, and the
// host capabilities of the current trigger context.
func NewController(resolver ConfigResolver, processor ImportProcessor, deps Deps) *Controller {
	return &Controller{
		resolver:  resolver,
		processor: processor,
		deps:      deps,
		hideDelay: statusHideDelay,
	}
}

// SortDocument is the explicit-command path: sort the given document and
// commit the edits directly to the live buffer. Deletes are applied as one
// atomic batch, and only after that batch settles is the insert issued, so
// ranges sharing line numbers are never invalidated.
func (c *Controller) SortDocument(ctx context.Context, doc *editor.Document) error {
	if !c.eligible(doc, false) {
		return ErrNotEligible
	}

	cfg, err := c.resolver.Resolve()
	if err != nil {
		return c.fail(doc.URI, "resolve configuration", err)
	}

	res, err := c.processor.SortImportData(ctx, doc.URI, doc.Text, cfg)
	if err != nil {
		return c.fail(doc.URI, "sort imports", err)
	}

	if !res.IsSortRequired {
		clog := logging.Component("sorter")
		clog.Debug().Str("uri", doc.URI).Msg("imports already sorted")
		return nil
	}

	deletes, insert := editsFromResult(res)
	committer := applyCommitter{workspace: c.deps.Workspace}
	if err := committer.Commit(doc.URI, deletes, insert); err != nil {
		return c.fail(doc.URI, "apply edits", err)
	}

	c.publish(event.Event{Type: event.SortApplied, Data: event.SortAppliedData{URI: doc.URI, Changed: true}})
	return nil
}

// SortOnSave is the pre-save path. Mismatched documents are tolerated
// silently so unrelated saves stay quiet, and nothing happens unless
// sortOnBeforeSave is enabled. Edits are not applied here: the combined
// delete+insert list is registered with the save buffer and the host commits
// it as part of the save, so the file on disk already holds sorted imports.
func (c *Controller) SortOnSave(ctx context.Context, doc *editor.Document) error {
	if !c.eligible(doc, true) {
		return nil
	}

	cfg, err := c.resolver.Resolve()
	if err != nil {
		return c.fail(doc.URI, "resolve configuration", err)
	}

	if !cfg.General.SortOnBeforeSave {
		return nil
	}

	res, err := c.processor.SortImportData(ctx, doc.URI, doc.Text, cfg)
	if err != nil {
		return c.fail(doc.URI, "sort imports", err)
	}

	if !res.IsSortRequired {
		return nil
	}

	deletes, insert := editsFromResult(res)
	return saveCommitter{buffer: c.deps.Saves}.Commit(doc.URI, deletes, insert)
}

// SortDirectory runs a directory batch: configuration is resolved once, the
// processor's per-file stream is consumed one element at a time, and the
// progress indicator carries a live count. The first failed element aborts
// the remainder and leaves the indicator at the last successful count. The
// terminal status auto-hides after a fixed delay without blocking anything.
// Returns how many files completed.
func (c *Controller) SortDirectory(ctx context.Context, dir string) (int, error) {
	cfg, err := c.resolver.Resolve()
	if err != nil {
		return 0, c.fail("", "resolve configuration", err)
	}

	stream, err := c.processor.SortDirectory(ctx, dir, cfg)
	if err != nil {
		return 0, c.fail("", "sort directory", err)
	}

	batchID := ulid.Make().String()
	c.publish(event.Event{Type: event.BatchStarted, Data: event.BatchStartedData{BatchID: batchID, Directory: dir}})
	c.statusShow("Sorting imports: 0")

	count := 0
	for res := range stream {
		if res.Err != nil {
			failErr := c.fail(res.FilePath, "sort directory", res.Err)
			c.publish(event.Event{Type: event.BatchError, Data: event.BatchErrorData{
				BatchID:  batchID,
				FilePath: res.FilePath,
				Error:    res.Err.Error(),
				Count:    count,
			}})
			return count, failErr
		}

		count++
		c.statusUpdate(fmt.Sprintf("Sorting imports: %d", count))
		c.publish(event.Event{Type: event.BatchFile, Data: event.BatchFileData{
			BatchID:  batchID,
			FilePath: res.FilePath,
			Changed:  res.Changed,
			Count:    count,
		}})
	}

	if err := ctx.Err(); err != nil {
		c.publish(event.Event{Type: event.BatchError, Data: event.BatchErrorData{
			BatchID: batchID,
			Error:   err.Error(),
			Count:   count,
		}})
		return count, err
	}

	c.statusUpdate(fmt.Sprintf("Sorted imports in %d files", count))
	c.publish(event.Event{Type: event.BatchDone, Data: event.BatchDoneData{BatchID: batchID, Total: count}})
	time.AfterFunc(c.hideDelay, c.statusHide)

	clog := logging.Component("sorter")
	clog.Info().Str("dir", dir).Int("files", count).Msg("directory sort complete")
	return count, nil
}

// fail converts an error into the one-line user-visible message every
// trigger boundary shows, publishes it, and returns the wrapped error.
func (c *Controller) fail(uri, op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	clog := logging.Component("sorter")
	clog.Error().Err(err).Str("op", op).Str("uri", uri).Msg("sort action failed")
	c.notify(fmt.Sprintf("Import sorter failed to %s: %v", op, err))
	c.publish(event.Event{Type: event.SortError, Data: event.SortErrorData{URI: uri, Error: wrapped.Error()}})
	return wrapped
}

func (c *Controller) notify(message string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(message)
	}
	c.publish(event.Event{Type: event.NoticePosted, Data: event.NoticePostedData{Message: message}})
}

func (c *Controller) publish(e event.Event) {
	if c.deps.Bus != nil {
		c.deps.Bus.PublishSync(e)
	}
}

func (c *Controller) statusShow(text string) {
	if c.deps.Status != nil {
		c.deps.Status.Show(text)
	}
	c.publish(event.Event{Type: event.StatusUpdated, Data: event.StatusUpdatedData{Text: text, Visible: true}})
}

func (c *Controller) statusUpdate(text string) {
	if c.deps.Status != nil {
		c.deps.Status.Update(text)
	}
	c.publish(event.Event{Type: event.StatusUpdated, Data: event.StatusUpdatedData{Text: text, Visible: true}})
}

func (c *Controller) statusHide() {
	if c.deps.Status != nil {
		c.deps.Status.Hide()
	}
	c.publish(event.Event{Type: event.StatusUpdated, Data: event.StatusUpdatedData{Visible: false}})
}
