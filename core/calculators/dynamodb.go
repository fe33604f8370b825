package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// DynamoDBCalculator prices AWS::DynamoDB::Table. On-demand billing is
// priced off a documented request-volume assumption (medium confidence);
// provisioned billing is priced deterministically from the declared
// throughput (high confidence). Grounded on the teacher's
// clouds/aws/database/dynamodb.go and the damon-houk adapter's DynamoDB
// handling in other_examples.
type DynamoDBCalculator struct{}

func NewDynamoDBCalculator() *DynamoDBCalculator { return &DynamoDBCalculator{} }

func (c *DynamoDBCalculator) Supports(cfnType string) bool { return cfnType == "AWS::DynamoDB::Table" }

func (c *DynamoDBCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

// assumedMonthlyRequestUnitsMillions is the documented default request volume used to
// price PAY_PER_REQUEST tables, in millions of read/write request units.
const assumedMonthlyRequestUnitsMillions = 1.0

func (c *DynamoDBCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	billingMode := stringProp(resource, "BillingMode", "PROVISIONED")

	if billingMode == "PAY_PER_REQUEST" {
		readParams := types.PriceQueryParams{
			ServiceCode: "AmazonDynamoDB",
			Region:      rgn,
			Filters: []types.Filter{
				{Field: "group", Value: "DDB-ReadUnits"},
				{Field: "location", Value: region.Location(rgn)},
			},
		}
		writeParams := types.PriceQueryParams{
			ServiceCode: "AmazonDynamoDB",
			Region:      rgn,
			Filters: []types.Filter{
				{Field: "group", Value: "DDB-WriteUnits"},
				{Field: "location", Value: region.Location(rgn)},
			},
		}
		readPrice, rerr := client.GetPrice(ctx, readParams)
		writePrice, werr := client.GetPrice(ctx, writeParams)
		if rerr != nil || werr != nil || readPrice == nil || writePrice == nil {
			return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for on-demand DynamoDB requests")
		}

		requestUnits := assumedMonthlyRequestUnitsMillions * 1_000_000
		return sumCosts(
			priced(*readPrice, requestUnits, types.ConfidenceMedium,
				"assumes 1,000,000 read request units/month"),
			priced(*writePrice, requestUnits, types.ConfidenceMedium,
				"assumes 1,000,000 write request units/month"),
		)
	}

	throughput, _ := resource.Properties["ProvisionedThroughput"].(map[string]interface{})
	readCapacity := 5.0
	writeCapacity := 5.0
	if throughput != nil {
		if v, ok := throughput["ReadCapacityUnits"].(float64); ok {
			readCapacity = v
		}
		if v, ok := throughput["WriteCapacityUnits"].(float64); ok {
			writeCapacity = v
		}
	}

	readParams := types.PriceQueryParams{
		ServiceCode: "AmazonDynamoDB",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "DDB-ReadUnits"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	writeParams := types.PriceQueryParams{
		ServiceCode: "AmazonDynamoDB",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "DDB-WriteUnits"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	readPrice, rerr := client.GetPrice(ctx, readParams)
	writePrice, werr := client.GetPrice(ctx, writeParams)
	if rerr != nil || werr != nil || readPrice == nil || writePrice == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for provisioned DynamoDB capacity")
	}

	return sumCosts(
		priced(*readPrice, readCapacity*hoursPerMonth, types.ConfidenceHigh,
			"provisioned read capacity units"),
		priced(*writePrice, writeCapacity*hoursPerMonth, types.ConfidenceHigh,
			"provisioned write capacity units"),
	)
}
