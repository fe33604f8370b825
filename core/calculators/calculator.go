// Package calculators implements the capability-triple cost model (spec
// §4.6): each calculator declares which CloudFormation resource types it
// supports and, optionally, a further precondition on the resource's own
// properties, and produces a MonthlyCost from a resource, its region, the
// pricing client, and its sibling resources in the template.
package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// Calculator prices one CloudFormation resource type (or family of types).
type Calculator interface {
	// Supports reports whether this calculator handles cfnType at all.
	Supports(cfnType string) bool

	// CanCalculate is an optional further precondition on the resource's
	// own properties. Calculators that don't need one always return true.
	CanCalculate(resource types.ResourceWithId) bool

	// Calculate prices resource. siblings is every resource in the same
	// template, for calculators that must dereference another logical id
	// (e.g. an AutoScalingGroup resolving its LaunchTemplate). usage carries
	// the user's configured usage-assumption overrides (spec §3); a
	// calculator that has no documented assumption to override ignores it.
	Calculate(ctx context.Context, resource types.ResourceWithId, region string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost
}

// Registry holds an ordered list of calculators. The first calculator whose
// Supports returns true, and among those the first whose CanCalculate
// returns true, prices the resource; if none match, the resource is
// "unknown" (spec §4.6).
type Registry struct {
	calculators []Calculator
}

// NewRegistry builds a registry over calculators, tried in order.
func NewRegistry(calculators ...Calculator) *Registry {
	return &Registry{calculators: calculators}
}

// Default returns the registry wired with every concrete calculator this
// analyzer ships, in the order listed in the grounding table.
func Default() *Registry {
	return NewRegistry(
		NewEC2Calculator(),
		NewAutoScalingCalculator(),
		NewRDSCalculator(),
		NewDynamoDBCalculator(),
		NewElastiCacheCalculator(),
		NewS3Calculator(),
		NewEBSCalculator(),
		NewLambdaCalculator(),
		NewELBv2Calculator(),
		NewNatGatewayCalculator(),
		NewSQSCalculator(),
		NewSNSCalculator(),
		NewLogGroupCalculator(),
		NewCloudWatchAlarmCalculator(),
		NewSecretsManagerCalculator(),
		NewECRCalculator(),
		NewECSServiceCalculator(),
	)
}

// Resolve returns the calculator that should price resource, and whether one
// was found.
func (r *Registry) Resolve(resource types.ResourceWithId) (Calculator, bool) {
	for _, c := range r.calculators {
		if !c.Supports(resource.Type) {
			continue
		}
		if c.CanCalculate(resource) {
			return c, true
		}
	}
	return nil, false
}
