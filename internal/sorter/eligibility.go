package sorter

import (
	"fmt"
	"path/filepath"

	"github.com/bovan/import-sorter/internal/editor"
)

// Language identifiers of the two recognized document variants.
const (
	LanguageTypeScript      = "typescript"
	LanguageTypeScriptReact = "typescriptreact"
)

var extensionLanguages = map[string]string{
	".ts":  LanguageTypeScript,
	".tsx": LanguageTypeScriptReact,
}

// IsSupportedLanguage reports whether a language identifier is sortable.
func IsSupportedLanguage(id string) bool {
	return id == LanguageTypeScript || id == LanguageTypeScriptReact
}

// LanguageForFile maps a file path to its language identifier, or "" for
// files the sorter does not handle.
func LanguageForFile(path string) string {
	return extensionLanguages[filepath.Ext(path)]
}

// SupportedFile reports whether path is a sortable source file.
func SupportedFile(path string) bool {
	return LanguageForFile(path) != ""
}

// eligible gates a candidate document. Ineligible documents produce a
// one-line notice naming the supported identifiers unless the mismatch is
// tolerated, which the automatic pre-save path uses to stay quiet on saves
// of unrelated files.
func (c *Controller) eligible(doc *editor.Document, tolerateMismatch bool) bool {
	if doc != nil && IsSupportedLanguage(doc.LanguageID) {
		return true
	}
	if !tolerateMismatch {
		c.notify(fmt.Sprintf("Import sorter supports %q and %q documents only",
			LanguageTypeScript, LanguageTypeScriptReact))
	}
	return false
}
