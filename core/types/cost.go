package types

import "github.com/shopspring/decimal"

// CurrencyUSD is the only currency this analyzer ever emits (§1 Non-goals).
const CurrencyUSD = "USD"

// MonthlyCost is a single resource's estimated monthly spend, together with
// the confidence in that estimate and the concrete assumptions it rests on.
//
// Invariant: ConfidenceUnknown implies Amount.IsZero() and len(Assumptions) >= 1.
type MonthlyCost struct {
	Amount      decimal.Decimal
	Currency    string
	Confidence  Confidence
	Assumptions []string
}

// ZeroCost returns a MonthlyCost of zero USD with the given confidence and
// assumption. It is the shape every "no calculator", "excluded", or
// "unsupported" result takes.
func ZeroCost(confidence Confidence, assumption string) MonthlyCost {
	var assumptions []string
	if assumption != "" {
		assumptions = []string{assumption}
	}
	return MonthlyCost{
		Amount:      decimal.Zero,
		Currency:    CurrencyUSD,
		Confidence:  confidence,
		Assumptions: assumptions,
	}
}

// ResourceCost pairs a logical resource with its computed monthly cost. It
// is the element type of CostDelta.AddedCosts and CostDelta.RemovedCosts.
type ResourceCost struct {
	LogicalID   string
	Type        string
	MonthlyCost MonthlyCost
}

// ModifiedResourceCost describes the cost impact of a resource whose
// properties changed between base and target.
//
// Confidence is the pessimistic combination of OldMonthlyCost.Confidence and
// NewMonthlyCost.Confidence (the lower of the two) — it exists so that
// combining confidence across the pair never has to overwrite either side's
// MonthlyCost, which would otherwise break the ConfidenceUnknown-implies-
// zero-amount invariant whenever one side is unknown and the other isn't.
type ModifiedResourceCost struct {
	LogicalID      string
	Type           string
	OldMonthlyCost MonthlyCost
	NewMonthlyCost MonthlyCost
	Confidence     Confidence
	CostDelta      decimal.Decimal
}

// CostDelta is the structured result of pricing a ResourceDiff: the signed
// monthly cost impact of moving from base to target, broken down by the
// resources that drove it.
//
// TotalDelta == Σ AddedCosts − Σ RemovedCosts + Σ (new−old) ModifiedCosts,
// to within 0.005 USD (testable property #1).
type CostDelta struct {
	TotalDelta    decimal.Decimal
	Currency      string
	AddedCosts    []ResourceCost
	RemovedCosts  []ResourceCost
	ModifiedCosts []ModifiedResourceCost
}

// IsEmpty reports whether the delta carries no changes at all — the
// "No resource changes detected" case every reporter renders specially.
func (d *CostDelta) IsEmpty() bool {
	return d.TotalDelta.IsZero() && len(d.AddedCosts) == 0 && len(d.RemovedCosts) == 0 && len(d.ModifiedCosts) == 0
}
