package calculators

import (
	"github.com/shopspring/decimal"

	"cdk-cost-analyzer/core/types"
)

// priced multiplies a catalog unit price by a quantity and attaches
// confidence and assumptions. unitPrice is the decimal.Decimal a Client
// already resolved; callers handle a nil catalog match before ever calling
// this — it only ever sees a resolved number.
func priced(unitPrice decimal.Decimal, quantity float64, confidence types.Confidence, assumptions ...string) types.MonthlyCost {
	amount := unitPrice.Mul(decimal.NewFromFloat(quantity))
	return types.MonthlyCost{
		Amount:      amount,
		Currency:    types.CurrencyUSD,
		Confidence:  confidence,
		Assumptions: assumptions,
	}
}

// sumCosts adds several MonthlyCost values together, combining currency
// (always USD here), taking the lowest confidence among the parts, and
// concatenating assumptions.
func sumCosts(parts ...types.MonthlyCost) types.MonthlyCost {
	total := decimal.Zero
	confidence := types.ConfidenceHigh
	var assumptions []string
	for _, p := range parts {
		total = total.Add(p.Amount)
		confidence = types.Lower(confidence, p.Confidence)
		assumptions = append(assumptions, p.Assumptions...)
	}
	return types.MonthlyCost{
		Amount:      total,
		Currency:    types.CurrencyUSD,
		Confidence:  confidence,
		Assumptions: assumptions,
	}
}
