package calculators

import (
	"context"
	"fmt"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// Documented default invocation assumption: 1,000,000 invocations/month at
// 200 ms each, matching the assumption string cited in spec.md §4.6.
const (
	assumedMonthlyInvocations = 1_000_000.0
	assumedDurationSeconds    = 0.2
)

// LambdaCalculator prices AWS::Lambda::Function by request count plus
// GB-seconds of compute, grounded on the teacher's
// clouds/aws/serverless/lambda.go.
type LambdaCalculator struct{}

func NewLambdaCalculator() *LambdaCalculator { return &LambdaCalculator{} }

func (c *LambdaCalculator) Supports(cfnType string) bool { return cfnType == "AWS::Lambda::Function" }

func (c *LambdaCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *LambdaCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	memoryMB := floatProp(resource, "MemorySize", 128)

	monthlyInvocations := assumedMonthlyInvocations
	if v, ok := usage.Float("lambda", "invocationsPerMonth"); ok {
		monthlyInvocations = v
	}
	durationSeconds := assumedDurationSeconds
	if v, ok := usage.Float("lambda", "durationSeconds"); ok {
		durationSeconds = v
	}
	gbSeconds := monthlyInvocations * durationSeconds * (memoryMB / 1024)

	requestParams := types.PriceQueryParams{
		ServiceCode: "AWSLambda",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "AWS-Lambda-Requests"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	durationParams := types.PriceQueryParams{
		ServiceCode: "AWSLambda",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "AWS-Lambda-Duration"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	requestPrice, rerr := client.GetPrice(ctx, requestParams)
	durationPrice, derr := client.GetPrice(ctx, durationParams)
	if rerr != nil || derr != nil || requestPrice == nil || durationPrice == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for Lambda requests/duration")
	}

	return sumCosts(
		priced(*requestPrice, monthlyInvocations, types.ConfidenceMedium,
			fmt.Sprintf("assumes %.0f invocations/month", monthlyInvocations)),
		priced(*durationPrice, gbSeconds, types.ConfidenceMedium,
			fmt.Sprintf("assumes %.0f invocations/month at %.0f ms each", monthlyInvocations, durationSeconds*1000)),
	)
}
