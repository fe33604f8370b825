// Package parser decodes a CloudFormation template (JSON or YAML) into the
// normalized Template shape the rest of the analyzer operates on (spec §4.1).
package parser

import (
	"encoding/json"
	"fmt"

	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/errors"

	"gopkg.in/yaml.v3"
)

// Parse decodes template text, trying JSON first and falling back to YAML,
// and normalizes the result into a Template. It never resolves intrinsics
// (Ref, Fn::GetAtt, ...) — those are left as opaque subtrees under
// Properties for calculators to inspect if they choose to.
func Parse(text string) (*types.Template, error) {
	raw, jsonErr := parseJSON(text)
	if jsonErr != nil {
		var yamlErr error
		raw, yamlErr = parseYAML(text)
		if yamlErr != nil {
			return nil, errors.Parsing(
				"template is neither valid JSON nor valid YAML",
				fmt.Errorf("json: %v; yaml: %v", jsonErr, yamlErr),
			)
		}
	}

	return normalize(raw)
}

func parseJSON(text string) (map[string]interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	m, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("top-level document is not a mapping")
	}
	return m, nil
}

func parseYAML(text string) (map[string]interface{}, error) {
	var doc interface{}
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	normalized, ok := normalizeYAMLValue(doc).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("top-level document is not a mapping")
	}
	return normalized, nil
}

// normalizeYAMLValue recursively converts map[interface{}]interface{} nodes
// (what some YAML decoders hand back for non-string keys) into
// map[string]interface{}, so downstream code only ever deals with one
// mapping shape regardless of which decoder produced it.
func normalizeYAMLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, vv := range val {
			out[k] = normalizeYAMLValue(vv)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, vv := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAMLValue(vv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, vv := range val {
			out[i] = normalizeYAMLValue(vv)
		}
		return out
	default:
		return val
	}
}

// normalize validates the decoded document against spec §4.1 and builds the
// canonical Template: the Resources mapping must exist, be a mapping of
// mappings, and every resource must carry a string Type. Properties
// defaults to an empty mapping when absent.
func normalize(raw map[string]interface{}) (*types.Template, error) {
	rawResources, ok := raw["Resources"]
	if !ok {
		return nil, errors.Parsing("template has no Resources section", nil)
	}

	resourcesMap, ok := rawResources.(map[string]interface{})
	if !ok {
		return nil, errors.Parsing("Resources must be a mapping", nil)
	}

	resources := make(map[string]types.ResourceWithId, len(resourcesMap))
	for logicalID, rawResource := range resourcesMap {
		resourceMap, ok := rawResource.(map[string]interface{})
		if !ok {
			return nil, errors.Parsing(fmt.Sprintf("resource %q is not a mapping", logicalID), nil)
		}

		typeVal, ok := resourceMap["Type"]
		if !ok {
			return nil, errors.Parsing(fmt.Sprintf("resource %q has no Type", logicalID), nil)
		}
		typeStr, ok := typeVal.(string)
		if !ok || typeStr == "" {
			return nil, errors.Parsing(fmt.Sprintf("resource %q has a non-string Type", logicalID), nil)
		}

		properties := map[string]interface{}{}
		if rawProps, ok := resourceMap["Properties"]; ok {
			props, ok := rawProps.(map[string]interface{})
			if !ok {
				return nil, errors.Parsing(fmt.Sprintf("resource %q Properties is not a mapping", logicalID), nil)
			}
			properties = props
		}

		resources[logicalID] = types.ResourceWithId{
			LogicalID:  logicalID,
			Type:       typeStr,
			Properties: properties,
		}
	}

	return &types.Template{Resources: resources}, nil
}
