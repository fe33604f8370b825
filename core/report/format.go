package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"cdk-cost-analyzer/core/types"
)

// currency renders amount with a $ prefix and exactly two decimals, no
// thousands grouping (spec §4.9).
func currency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// signed renders a delta amount with an explicit +/- sign; exactly zero is
// unsigned (spec §4.9).
func signed(amount decimal.Decimal) string {
	switch {
	case amount.IsPositive():
		return "+" + currency(amount)
	case amount.IsNegative():
		return "-" + currency(amount.Abs())
	default:
		return currency(decimal.Zero)
	}
}

// sortedResourceCosts returns costs sorted descending by amount, tie-broken
// ascending by logical id (spec §4.9).
func sortedResourceCosts(costs []types.ResourceCost) []types.ResourceCost {
	out := append([]types.ResourceCost(nil), costs...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MonthlyCost.Amount.Equal(out[j].MonthlyCost.Amount) {
			return out[i].MonthlyCost.Amount.GreaterThan(out[j].MonthlyCost.Amount)
		}
		return out[i].LogicalID < out[j].LogicalID
	})
	return out
}

// sortedModifiedCosts returns costs sorted descending by |costDelta|,
// tie-broken ascending by logical id (spec §4.9).
func sortedModifiedCosts(costs []types.ModifiedResourceCost) []types.ModifiedResourceCost {
	out := append([]types.ModifiedResourceCost(nil), costs...)
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].CostDelta.Abs(), out[j].CostDelta.Abs()
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return out[i].LogicalID < out[j].LogicalID
	})
	return out
}

// topContributors returns up to n of the largest-magnitude cost drivers
// across added, removed, and modified entries, for the "Top Cost
// Contributors" table.
func topContributors(delta types.CostDelta, n int) []contributor {
	var all []contributor
	for _, a := range delta.AddedCosts {
		all = append(all, contributor{a.LogicalID, a.Type, a.MonthlyCost.Amount})
	}
	for _, r := range delta.RemovedCosts {
		all = append(all, contributor{r.LogicalID, r.Type, r.MonthlyCost.Amount.Neg()})
	}
	for _, m := range delta.ModifiedCosts {
		all = append(all, contributor{m.LogicalID, m.Type, m.CostDelta})
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].amount.Abs().GreaterThan(all[j].amount.Abs())
	})

	if len(all) > n {
		all = all[:n]
	}
	return all
}

type contributor struct {
	logicalID string
	cfnType   string
	amount    decimal.Decimal
}

func confidenceTag(c types.Confidence) string {
	return fmt.Sprintf("[%s]", c)
}
