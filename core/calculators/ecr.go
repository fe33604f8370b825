package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// assumedECRStorageGB is the documented default image storage volume for a
// repository with no per-image sizing signal.
const assumedECRStorageGB = 10.0

// ECRCalculator prices AWS::ECR::Repository by assumed image storage,
// grounded on the teacher's clouds/aws/containers/ecr.go.
type ECRCalculator struct{}

func NewECRCalculator() *ECRCalculator { return &ECRCalculator{} }

func (c *ECRCalculator) Supports(cfnType string) bool { return cfnType == "AWS::ECR::Repository" }

func (c *ECRCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *ECRCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	params := types.PriceQueryParams{
		ServiceCode: "AmazonECR",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "ECR-Storage"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for ECR storage")
	}

	return priced(*price, assumedECRStorageGB, types.ConfidenceLow,
		"assumes 10 GB of image storage")
}
