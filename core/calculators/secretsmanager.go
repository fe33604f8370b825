package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// SecretsManagerCalculator prices AWS::SecretsManager::Secret — a flat
// per-secret monthly charge, grounded on the teacher's
// clouds/aws/secrets/secrets_manager.go.
type SecretsManagerCalculator struct{}

func NewSecretsManagerCalculator() *SecretsManagerCalculator { return &SecretsManagerCalculator{} }

func (c *SecretsManagerCalculator) Supports(cfnType string) bool {
	return cfnType == "AWS::SecretsManager::Secret"
}

func (c *SecretsManagerCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *SecretsManagerCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	params := types.PriceQueryParams{
		ServiceCode: "AWSSecretsManager",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "Secret"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for Secrets Manager secret")
	}

	return priced(*price, 1, types.ConfidenceHigh, "one secret stored for the full month")
}
