// Package threshold implements the ThresholdEvaluator (spec §4.8): turning a
// priced CostDelta and an environment-scoped configuration into a
// pass/warn/fail verdict with actionable recommendations.
package threshold

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"cdk-cost-analyzer/internal/config"
	"cdk-cost-analyzer/core/types"
)

// Level is the severity of a threshold evaluation.
type Level string

const (
	LevelNone    Level = "none"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Result is the outcome of evaluating a CostDelta against thresholds.
type Result struct {
	Passed          bool
	Level           Level
	Threshold       *float64
	Delta           decimal.Decimal
	Message         string
	Recommendations []string
}

// Evaluate resolves environment-scoped thresholds (falling back to global)
// and classifies delta.TotalDelta against them (spec §4.8).
func Evaluate(delta types.CostDelta, thresholds config.Thresholds, environment string) Result {
	scoped := thresholds.ForEnvironment(environment)
	recommendations := topRecommendations(delta)

	total, _ := delta.TotalDelta.Float64()

	if scoped.Error != nil && total >= *scoped.Error {
		return Result{
			Passed:          false,
			Level:           LevelError,
			Threshold:       scoped.Error,
			Delta:           delta.TotalDelta,
			Message:         fmt.Sprintf("EXCEEDED: monthly cost increase of $%.2f exceeds the error threshold of $%.2f", total, *scoped.Error),
			Recommendations: recommendations,
		}
	}

	if scoped.Warning != nil && total >= *scoped.Warning {
		return Result{
			Passed:          true,
			Level:           LevelWarning,
			Threshold:       scoped.Warning,
			Delta:           delta.TotalDelta,
			Message:         fmt.Sprintf("monthly cost increase of $%.2f meets or exceeds the warning threshold of $%.2f", total, *scoped.Warning),
			Recommendations: recommendations,
		}
	}

	return Result{
		Passed:  true,
		Level:   LevelNone,
		Delta:   delta.TotalDelta,
		Message: "no configured threshold was exceeded",
	}
}

// topRecommendations returns up to three recommendations generated from the
// top cost-driving entries in delta, ranked by their contribution to
// TotalDelta (spec §4.8).
func topRecommendations(delta types.CostDelta) []string {
	type driver struct {
		logicalID string
		cfnType   string
		amount    decimal.Decimal
	}

	var drivers []driver
	for _, a := range delta.AddedCosts {
		drivers = append(drivers, driver{a.LogicalID, a.Type, a.MonthlyCost.Amount})
	}
	for _, m := range delta.ModifiedCosts {
		drivers = append(drivers, driver{m.LogicalID, m.Type, m.CostDelta})
	}

	sort.Slice(drivers, func(i, j int) bool {
		return drivers[i].amount.GreaterThan(drivers[j].amount)
	})

	var recommendations []string
	for i, d := range drivers {
		if i >= 3 || !d.amount.IsPositive() {
			break
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Consider a smaller or reserved configuration for %s (%s), contributing $%s/month", d.logicalID, d.cfnType, d.amount.StringFixed(2)))
	}
	return recommendations
}
