// Package cachekey is the single source of truth for turning a
// PriceQueryParams into a cache key (spec §4.4, §9). No other package may
// duplicate this logic.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"cdk-cost-analyzer/core/types"
)

// Of returns the SHA-256 hex digest of the canonical JSON encoding of
// params, with Filters sorted lexicographically by (Field, Value) so that
// callers never need to sort them first. Two PriceQueryParams that differ
// only in filter order hash to the same key.
func Of(params types.PriceQueryParams) string {
	filters := append([]types.Filter(nil), params.Filters...)
	sort.Slice(filters, func(i, j int) bool {
		if filters[i].Field != filters[j].Field {
			return filters[i].Field < filters[j].Field
		}
		return filters[i].Value < filters[j].Value
	})

	// Marshalling a struct of strings cannot fail.
	canonical, _ := json.Marshal(types.PriceQueryParams{
		ServiceCode: params.ServiceCode,
		Region:      params.Region,
		Filters:     filters,
	})

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
