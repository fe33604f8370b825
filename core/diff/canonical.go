package diff

import (
	"fmt"
	"sort"
)

// canonicalEqual implements spec §4.2's canonical property equality:
// recursively sort mapping keys, preserve list order, then compare. This
// gives insertion-order independence on maps while preserving the semantic
// order of lists (policy statements, CIDR blocks, ...).
func canonicalEqual(a, b map[string]interface{}) bool {
	return canonicalize(a) == canonicalize(b)
}

// canonicalize renders a value to a deterministic string form: object keys
// sorted, list order preserved. It is used only for comparison, never
// exposed as the analyzer's wire format.
func canonicalize(v interface{}) string {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := "{"
		for i, k := range keys {
			if i > 0 {
				out += ","
			}
			out += fmt.Sprintf("%q:%s", k, canonicalize(val[k]))
		}
		return out + "}"
	case []interface{}:
		out := "["
		for i, item := range val {
			if i > 0 {
				out += ","
			}
			out += canonicalize(item)
		}
		return out + "]"
	case int:
		return fmt.Sprintf("%g", float64(val))
	case int64:
		return fmt.Sprintf("%g", float64(val))
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%#v", val)
	}
}
