package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// ECSServiceCalculator prices AWS::ECS::Service running on Fargate by vCPU
// and memory-hours; services on the EC2 launch type are already priced by
// the underlying EC2 instances and are reported unknown here so they aren't
// double-counted. Grounded on the teacher's
// clouds/aws/containers/ecs.go.
type ECSServiceCalculator struct{}

func NewECSServiceCalculator() *ECSServiceCalculator { return &ECSServiceCalculator{} }

func (c *ECSServiceCalculator) Supports(cfnType string) bool { return cfnType == "AWS::ECS::Service" }

func (c *ECSServiceCalculator) CanCalculate(resource types.ResourceWithId) bool {
	return stringProp(resource, "LaunchType", "EC2") == "FARGATE"
}

func (c *ECSServiceCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	desiredCount := floatProp(resource, "DesiredCount", 1)

	vcpuParams := types.PriceQueryParams{
		ServiceCode: "AmazonECS",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "ECS-Fargate-vCPU"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	memoryParams := types.PriceQueryParams{
		ServiceCode: "AmazonECS",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "ECS-Fargate-GB"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	vcpuPrice, verr := client.GetPrice(ctx, vcpuParams)
	memoryPrice, merr := client.GetPrice(ctx, memoryParams)
	if verr != nil || merr != nil || vcpuPrice == nil || memoryPrice == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for Fargate vCPU/memory")
	}

	// Defaults match Fargate's minimum task size (0.25 vCPU, 0.5 GB) when the
	// service carries no TaskDefinition-derived sizing.
	vcpu := 0.25
	memoryGB := 0.5

	return sumCosts(
		priced(*vcpuPrice, vcpu*hoursPerMonth*desiredCount, types.ConfidenceMedium,
			"assumes the minimum Fargate task size (0.25 vCPU) absent a resolved task definition"),
		priced(*memoryPrice, memoryGB*hoursPerMonth*desiredCount, types.ConfidenceMedium,
			"assumes the minimum Fargate task size (0.5 GB) absent a resolved task definition"),
	)
}
