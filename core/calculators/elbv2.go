package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// ELBv2Calculator prices AWS::ElasticLoadBalancingV2::LoadBalancer by
// hourly charge, grounded on the teacher's clouds/aws/networking/lb.go.
type ELBv2Calculator struct{}

func NewELBv2Calculator() *ELBv2Calculator { return &ELBv2Calculator{} }

func (c *ELBv2Calculator) Supports(cfnType string) bool {
	return cfnType == "AWS::ElasticLoadBalancingV2::LoadBalancer"
}

func (c *ELBv2Calculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *ELBv2Calculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	lbType := stringProp(resource, "Type", "application")
	usageGroup := "ELB:Balancer"
	if lbType == "network" {
		usageGroup = "ELB:NLB"
	}

	params := types.PriceQueryParams{
		ServiceCode: "AWSELB",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: usageGroup},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for load balancer type "+lbType)
	}

	return priced(*price, hoursPerMonth, types.ConfidenceHigh,
		"assumes 730 hours/month, excludes LCU/capacity-unit usage charges")
}
