package calculators

import "cdk-cost-analyzer/core/types"

// stringProp returns a top-level string property, or def if absent or not a
// string. CFN intrinsics (Ref/Fn::GetAtt) decode as maps, not strings, so
// this naturally treats an intrinsic-valued property as "absent".
func stringProp(resource types.ResourceWithId, key, def string) string {
	v, ok := resource.Properties[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func floatProp(resource types.ResourceWithId, key string, def float64) float64 {
	v, ok := resource.Properties[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

func intProp(resource types.ResourceWithId, key string, def int) int {
	return int(floatProp(resource, key, float64(def)))
}

func boolProp(resource types.ResourceWithId, key string, def bool) bool {
	v, ok := resource.Properties[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// refTarget returns the logical id a property refers to via `{"Ref": "Id"}`,
// or "" if the property isn't a Ref intrinsic.
func refTarget(resource types.ResourceWithId, key string) string {
	v, ok := resource.Properties[key]
	if !ok {
		return ""
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	ref, ok := m["Ref"]
	if !ok {
		return ""
	}
	id, _ := ref.(string)
	return id
}

// findSibling looks up logicalID among siblings.
func findSibling(siblings []types.ResourceWithId, logicalID string) (types.ResourceWithId, bool) {
	for _, s := range siblings {
		if s.LogicalID == logicalID {
			return s, true
		}
	}
	return types.ResourceWithId{}, false
}
