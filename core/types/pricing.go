// Package types - pricing query and cache entity shapes.
package types

import "github.com/shopspring/decimal"

// Filter is one TERM_MATCH constraint in a pricing catalog query.
type Filter struct {
	Field string
	Value string
}

// PriceQueryParams is the pure-data key used to look up (and cache) a price.
// No client state may influence the value of this key — it is the single
// thing a cache key is ever computed from.
type PriceQueryParams struct {
	ServiceCode string
	Region      string
	Filters     []Filter
}

// CachedPriceEntry is a price value persisted in the two-tier cache. Price
// is a decimal.Decimal, not a float64, for the same reason MonthlyCost.Amount
// is: a catalog's pricePerUnit.USD is a decimal string, and parsing it
// through float64 before it ever reaches money arithmetic reintroduces the
// binary-rounding drift decimal.Decimal exists to avoid.
type CachedPriceEntry struct {
	Price     decimal.Decimal
	Timestamp int64 // epoch-ms
}
