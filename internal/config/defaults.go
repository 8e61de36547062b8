package config

import (
	"encoding/json"

	"github.com/bovan/import-sorter/pkg/types"
)

// DefaultConfigurationFilePath is the compiled-in project configuration file
// location, relative to the workspace root. A missing file here is expected
// and silent; a missing file at any other configured path is warned about.
const DefaultConfigurationFilePath = "./import-sorter.json"

// settingsNamespace is the dotted-key prefix used inside the project
// configuration file (e.g. "importSorter.sortConfiguration.orderBy").
const settingsNamespace = "importSorter"

// Section names of the three sub-configurations.
const (
	sectionGeneral      = "generalConfiguration"
	sectionSort         = "sortConfiguration"
	sectionImportString = "importStringConfiguration"
)

// Default returns the built-in configuration, the lowest-precedence layer of
// every resolution.
func Default() types.Config {
	return types.Config{
		General: types.GeneralConfig{
			ConfigurationFilePath: DefaultConfigurationFilePath,
			SortOnBeforeSave:      false,
			Exclude:               []string{"**/node_modules/**"},
		},
		Sort: types.SortConfig{
			OrderBy:         "caseInsensitive",
			Direction:       "asc",
			JoinImportPaths: true,
		},
		ImportString: types.ImportStringConfig{
			TabSize:   4,
			QuoteMark: "single",
			MaximumNumberOfImportExpressionsPerLine: types.MaxLineConfig{
				Type:  "maxLineLength",
				Count: 100,
			},
			HasSemicolon:                      true,
			NumberOfEmptyLinesAfterAllImports: 1,
			TrailingComma:                     "none",
		},
	}
}

// toMap converts a typed value to its nested map form via a JSON round trip.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// fromMap decodes a nested map into a typed value via a JSON round trip.
// Type mismatches surface here as decode errors.
func fromMap(m map[string]any, out any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// fromBytes decodes raw JSON into out.
func fromBytes(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

// section returns the named sub-configuration map, or nil when absent.
func section(m map[string]any, name string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[name].(map[string]any)
	return sub
}
