// Package server exposes the import sorter over HTTP for editor frontends.
//
// The API is small and document-centric. A client stages each operation by
// posting the document snapshot it holds; the server never reads open
// buffers from disk.
//
//	GET  /config           effective configuration after the three-source merge
//	GET  /config/presence  where the project configuration file is looked up
//	POST /document/sort    sort now, returns the edits and the resulting text
//	POST /document/will-save  pre-save edit list for the editor to fold in
//	POST /document/preview    unified diff of what a sort would do
//	POST /directory/sort   batch sort, SSE progress stream
//	GET  /event            global SSE event feed
//
// Per-document requests may carry a "settings" object: the editor settings
// layer of the configuration merge. Configuration is resolved inside every
// handler, so edits in the project configuration file take effect on the
// next request without a restart.
package server
