/*
Package sorter is the edit-commit controller: it asks the import processor
whether a document needs sorting and, if so, turns the resulting edit data
into committed editor edits.

Three trigger paths share the same orchestration and differ only in gating
and commit protocol:

  - SortDocument (explicit command): commits directly to the live buffer,
    deletes first as one atomic batch, then the insert once the deletes have
    settled.
  - SortOnSave (pre-save hook): tolerates ineligible documents silently, is
    gated on generalConfiguration.sortOnBeforeSave, and registers one
    combined edit list with the save buffer instead of applying anything.
  - SortDirectory (batch): consumes the processor's per-file stream with a
    live progress count, aborting on the first failed element.

Effective configuration is resolved fresh for every trigger. All failures
are caught at the trigger boundary, rendered as a one-line user message, and
published as sort.error events; the process stays healthy.
*/
package sorter
