package types

// Config is the effective import-sorter configuration used for one sort
// action. It is assembled per trigger from built-in defaults, the editor's
// settings snapshot, and the optional project configuration file, with the
// file taking precedence over settings and settings over defaults.
type Config struct {
	General      GeneralConfig      `json:"generalConfiguration"`
	Sort         SortConfig         `json:"sortConfiguration"`
	ImportString ImportStringConfig `json:"importStringConfiguration"`
}

// GeneralConfig holds behavior flags that are independent of how imports are
// ordered or rendered.
type GeneralConfig struct {
	// ConfigurationFilePath is the project configuration file location,
	// relative to the workspace root.
	ConfigurationFilePath string `json:"configurationFilePath,omitempty"`

	// SortOnBeforeSave enables the pre-save sort hook.
	SortOnBeforeSave bool `json:"sortOnBeforeSave"`

	// Exclude lists glob patterns (doublestar syntax) skipped by
	// directory-wide sorts.
	Exclude []string `json:"exclude,omitempty"`
}

// SortConfig controls how the external import processor orders imports.
// The ordering policy itself lives in the processor; this section is carried
// to it opaquely.
type SortConfig struct {
	OrderBy             string         `json:"orderBy,omitempty"`   // "caseInsensitive" | "caseSensitive"
	Direction           string         `json:"direction,omitempty"` // "asc" | "desc"
	JoinImportPaths     bool           `json:"joinImportPaths"`
	RemoveUnusedImports bool           `json:"removeUnusedImports"`
	CustomOrderingRules []OrderingRule `json:"customOrderingRules,omitempty"`
}

// OrderingRule assigns an order level to import paths matching a regex.
type OrderingRule struct {
	Regex      string `json:"regex"`
	OrderLevel int    `json:"orderLevel"`
}

// ImportStringConfig controls how the processor renders the sorted block.
type ImportStringConfig struct {
	TabSize                                 int           `json:"tabSize,omitempty"`
	QuoteMark                               string        `json:"quoteMark,omitempty"` // "single" | "double"
	MaximumNumberOfImportExpressionsPerLine MaxLineConfig `json:"maximumNumberOfImportExpressionsPerLine,omitempty"`
	HasSemicolon                            bool          `json:"hasSemicolon"`
	NumberOfEmptyLinesAfterAllImports       int           `json:"numberOfEmptyLinesAfterAllImports,omitempty"`
	TrailingComma                           string        `json:"trailingComma,omitempty"` // "none" | "always" | "multiLine"
}

// MaxLineConfig bounds how many import expressions share a line.
type MaxLineConfig struct {
	Type  string `json:"type,omitempty"` // "maxLineLength" | "words"
	Count int    `json:"count,omitempty"`
}
