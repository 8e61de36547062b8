package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bovan/import-sorter/internal/config"
	"github.com/bovan/import-sorter/internal/editor"
	"github.com/bovan/import-sorter/internal/event"
	"github.com/bovan/import-sorter/internal/sorter"
	"github.com/bovan/import-sorter/pkg/types"
)

// documentRequest is the payload of every per-document operation. Settings
// is the caller's editor-settings layer; when omitted the server's registered
// layer applies.
type documentRequest struct {
	URI        string          `json:"uri"`
	LanguageID string          `json:"languageId"`
	Text       string          `json:"text"`
	Settings   config.Settings `json:"settings,omitempty"`
}

// documentResponse reports what one sort action did. Text is the document
// after the edits; Edits is the flat list a client can replay against its
// own buffer instead.
type documentResponse struct {
	Changed  bool             `json:"changed"`
	Text     string           `json:"text,omitempty"`
	Edits    []types.TextEdit `json:"edits,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

type directoryRequest struct {
	Directory string          `json:"directory"`
	Settings  config.Settings `json:"settings,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// stageDocument prepares the per-request host and controller for one
// document operation.
func (s *Server) stageDocument(req documentRequest, warnings *[]string) (*editor.MemoryHost, *sorter.Controller, *editor.Document) {
	host := editor.NewMemoryHost()
	doc := editor.Document{URI: req.URI, LanguageID: req.LanguageID, Text: req.Text}
	host.Open(doc)

	resolver := s.resolverFor(req.Settings, func(msg string) {
		*warnings = append(*warnings, msg)
	})
	ctrl := sorter.NewController(resolver, s.processor, sorter.Deps{
		Workspace: host,
		Saves:     host,
		Notifier:  host,
		Bus:       s.bus,
	})
	return host, ctrl, &doc
}

// writeSortError maps a controller error onto an HTTP error response.
func writeSortError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sorter.ErrNotEligible):
		writeError(w, http.StatusUnprocessableEntity, ErrCodeNotEligible, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, ErrCodeSortFailed, err.Error())
	}
}

// getConfig returns the effective configuration after the full three-source
// merge.
func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	var warnings []string
	cfg, err := s.resolverFor(nil, func(msg string) { warnings = append(warnings, msg) }).Resolve()
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeConfigError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"configuration": cfg,
		"warnings":      warnings,
	})
}

// getConfigPresence reports where the project configuration file is looked
// up and whether it exists.
func (s *Server) getConfigPresence(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.resolverFor(nil, nil).Presence())
}

// sortDocument is the explicit-command path: edits are committed against the
// staged document and the resulting text returned.
func (s *Server) sortDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var warnings []string
	host, ctrl, doc := s.stageDocument(req, &warnings)

	if err := ctrl.SortDocument(r.Context(), doc); err != nil {
		writeSortError(w, err)
		return
	}

	var edits []types.TextEdit
	for _, batch := range host.Batches(doc.URI) {
		edits = append(edits, batch...)
	}
	after, _ := host.Lookup(doc.URI)

	writeJSON(w, http.StatusOK, documentResponse{
		Changed:  len(edits) > 0,
		Text:     after.Text,
		Edits:    edits,
		Warnings: warnings,
	})
}

// willSaveDocument is the pre-save path: nothing is applied here, the
// response carries the edit list the editor folds into the save. An empty
// list means the save proceeds untouched, whether because the document is
// not sortable, sortOnBeforeSave is off, or the imports are already sorted.
func (s *Server) willSaveDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var warnings []string
	host, ctrl, doc := s.stageDocument(req, &warnings)

	if err := ctrl.SortOnSave(r.Context(), doc); err != nil {
		writeSortError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{
		Edits:    host.PendingSaveEdits(doc.URI),
		Warnings: warnings,
	})
}

// previewDocument returns the unified diff a sort would produce, without
// committing anything.
func (s *Server) previewDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var warnings []string
	_, ctrl, doc := s.stageDocument(req, &warnings)

	diff, err := ctrl.Preview(r.Context(), doc)
	if err != nil {
		writeSortError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"diff":     diff,
		"warnings": warnings,
	})
}

// sortDirectory runs a directory batch and streams its progress as SSE. The
// batch runs on the request goroutine; progress events publish synchronously,
// so each file's event is on the wire before the next file is touched.
func (s *Server) sortDirectory(w http.ResponseWriter, r *http.Request) {
	var req directoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Directory == "" {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "directory is required")
		return
	}

	sseHeaders(w)
	sse, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
	sse.flusher.Flush()

	// A request-scoped bus keeps this stream free of other clients' events.
	bus := event.NewBus()
	defer bus.Close()
	unsub := bus.SubscribeAll(func(e event.Event) {
		_ = sse.writeEvent("message", wireEvent{Type: e.Type, Properties: e.Data})
	})
	defer unsub()

	var warnings []string
	resolver := s.resolverFor(req.Settings, func(msg string) { warnings = append(warnings, msg) })
	ctrl := sorter.NewController(resolver, s.processor, sorter.Deps{Bus: bus})

	count, err := ctrl.SortDirectory(r.Context(), req.Directory)

	result := map[string]any{"count": count, "warnings": warnings}
	if err != nil {
		result["error"] = err.Error()
	}
	_ = sse.writeEvent("message", wireEvent{Type: "batch.result", Properties: result})
}
