package config

import "strings"

// deepMerge recursively merges src into dst. Values in src override values
// in dst. Maps are merged recursively; other types are replaced.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = deepCopyValue(srcVal)
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = deepMerge(dstMap, srcMap)
		} else {
			dst[key] = deepCopyValue(srcVal)
		}
	}

	return dst
}

// deepCopyMap creates a deep copy of a nested map. The resolver never hands
// a live settings object to a merge; shared references would let a later
// overlay corrupt host-owned state.
func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = deepCopyValue(val)
	}
	return dst
}

func deepCopySlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = deepCopyValue(val)
	}
	return dst
}

func deepCopyValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case []any:
		return deepCopySlice(v)
	default:
		return val
	}
}

// setPath sets a value in a nested map using a dot-separated path, creating
// intermediate maps as needed.
func setPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}

// unflatten expands dotted keys into nested mappings, stripping a leading
// namespace segment from each key. Fragments from individual keys are
// deep-merged together, so the result is independent of map iteration order
// for disjoint keys and last-write-wins on structural overlap.
func unflatten(flat map[string]any, namespace string) map[string]any {
	result := make(map[string]any)
	prefix := namespace + "."

	for key, val := range flat {
		// A whole nested object under the bare namespace key merges as-is.
		if key == namespace {
			if m, ok := val.(map[string]any); ok {
				result = deepMerge(result, m)
				continue
			}
		}

		key = strings.TrimPrefix(key, prefix)

		fragment := make(map[string]any)
		setPath(fragment, key, deepCopyValue(val))
		result = deepMerge(result, fragment)
	}

	return result
}
