/*
Package config resolves the effective import-sorter configuration for one
sort action.

Three sources are merged with deterministic precedence, applied independently
per sub-configuration (general, sort, import-string):

	project file  >  editor settings snapshot  >  built-in defaults

Merging is a deep overlay: a value present in a higher-precedence source
always wins, missing keys fall through. Every source is deep-copied before
merging so the resolver never mutates host-owned state.

The project file is JSON (JSONC comments tolerated) keyed by dotted paths
under the "importSorter" namespace:

	{
	  "importSorter.sortConfiguration.orderBy": "caseSensitive",
	  "importSorter.generalConfiguration.sortOnBeforeSave": true
	}

Dotted keys are unflattened into nested mappings and the namespace segment is
stripped before merging. Unknown keys pass through structurally; the package
performs no schema validation.

A configured file path that does not exist is a warning only when it differs
from DefaultConfigurationFilePath: pointing the setting at a missing file is
user error worth surfacing, while an absent file at the default path is the
normal state of a project without one. Malformed JSON, by contrast, is a
fatal resolution error and propagates to the trigger boundary.
*/
package config
