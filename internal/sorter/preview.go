package sorter

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bovan/import-sorter/internal/editor"
)

// Preview computes the unified diff the direct commit path would produce for
// a document, without touching it. Returns "" when no sort is required.
func (c *Controller) Preview(ctx context.Context, doc *editor.Document) (string, error) {
	if !c.eligible(doc, false) {
		return "", ErrNotEligible
	}

	cfg, err := c.resolver.Resolve()
	if err != nil {
		return "", c.fail(doc.URI, "resolve configuration", err)
	}

	res, err := c.processor.SortImportData(ctx, doc.URI, doc.Text, cfg)
	if err != nil {
		return "", c.fail(doc.URI, "sort imports", err)
	}

	if !res.IsSortRequired {
		return "", nil
	}

	deletes, insert := editsFromResult(res)
	after, err := editor.ApplyEditsToText(doc.Text, append(deletes, insert))
	if err != nil {
		return "", c.fail(doc.URI, "compute preview", err)
	}

	return unifiedDiff(doc.URI, doc.Text, after), nil
}

// unifiedDiff renders a line-based patch between two document states,
// prefixed with file headers when a path is known.
func unifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(before, diffs)
	patchText := dmp.PatchToText(patches)
	if patchText == "" {
		return ""
	}

	var builder strings.Builder
	if path != "" {
		builder.WriteString(fmt.Sprintf("--- %s\n", path))
		builder.WriteString(fmt.Sprintf("+++ %s\n", path))
	}
	builder.WriteString(patchText)
	return builder.String()
}
