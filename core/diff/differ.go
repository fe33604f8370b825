// Package diff implements the set- and property-equality-based comparison
// between two parsed templates (spec §4.2).
package diff

import (
	"sort"

	"cdk-cost-analyzer/core/types"
)

// Diff computes the ResourceDiff between a base and a target template.
//
// For each logical id k:
//   - k present only in target  -> added
//   - k present only in base    -> removed
//   - k present in both, same Type, canonically-equal Properties -> skipped
//   - k present in both, same Type, different Properties -> modified
//   - k present in both, different Type -> encoded as removed-from-base
//     plus added-to-target under the same id (a type change is never a
//     "modified" entry; spec §3 invariant)
func Diff(base, target *types.Template) types.ResourceDiff {
	result := types.ResourceDiff{
		Added:    []types.ResourceWithId{},
		Removed:  []types.ResourceWithId{},
		Modified: []types.ModifiedPair{},
	}

	for id, targetRes := range target.Resources {
		baseRes, existedInBase := base.Resources[id]
		if !existedInBase {
			result.Added = append(result.Added, targetRes)
			continue
		}

		if baseRes.Type != targetRes.Type {
			result.Removed = append(result.Removed, baseRes)
			result.Added = append(result.Added, targetRes)
			continue
		}

		if canonicalEqual(baseRes.Properties, targetRes.Properties) {
			continue
		}

		result.Modified = append(result.Modified, types.ModifiedPair{
			LogicalID:     id,
			Type:          targetRes.Type,
			OldProperties: baseRes.Properties,
			NewProperties: targetRes.Properties,
		})
	}

	for id, baseRes := range base.Resources {
		if _, existsInTarget := target.Resources[id]; !existsInTarget {
			result.Removed = append(result.Removed, baseRes)
		}
	}

	sortResources(result.Added)
	sortResources(result.Removed)
	sort.Slice(result.Modified, func(i, j int) bool {
		return result.Modified[i].LogicalID < result.Modified[j].LogicalID
	})

	return result
}

func sortResources(resources []types.ResourceWithId) {
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].LogicalID < resources[j].LogicalID
	})
}
