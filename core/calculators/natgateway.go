package calculators

import (
	"context"
	"fmt"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// assumedNatGatewayGBProcessed is the documented default data-processing
// volume for a NAT gateway.
const assumedNatGatewayGBProcessed = 100.0

// NatGatewayCalculator prices AWS::EC2::NatGateway by hourly charge plus an
// assumed data-processing volume, grounded on the teacher's
// clouds/aws/networking/nat_gateway.go.
type NatGatewayCalculator struct{}

func NewNatGatewayCalculator() *NatGatewayCalculator { return &NatGatewayCalculator{} }

func (c *NatGatewayCalculator) Supports(cfnType string) bool { return cfnType == "AWS::EC2::NatGateway" }

func (c *NatGatewayCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *NatGatewayCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	hourlyParams := types.PriceQueryParams{
		ServiceCode: "AmazonVPC",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "NGW:NatGateway"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	dataParams := types.PriceQueryParams{
		ServiceCode: "AmazonVPC",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "NGW:DataProcessing"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	hourlyPrice, herr := client.GetPrice(ctx, hourlyParams)
	if herr != nil || hourlyPrice == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for NAT gateway")
	}
	hourlyCost := priced(*hourlyPrice, hoursPerMonth, types.ConfidenceHigh, "assumes 730 hours/month")

	dataPrice, derr := client.GetPrice(ctx, dataParams)
	if derr != nil || dataPrice == nil {
		return sumCosts(hourlyCost, types.ZeroCost(types.ConfidenceMedium,
			"data processing price unavailable, hourly charge only"))
	}

	dataProcessedGB := assumedNatGatewayGBProcessed
	assumption := "assumes 100 GB processed/month"
	if v, ok := usage.Float("natGateway", "dataProcessedGB"); ok {
		dataProcessedGB = v
		assumption = fmt.Sprintf("assumes %.0f GB processed/month (configured override)", dataProcessedGB)
	}
	dataCost := priced(*dataPrice, dataProcessedGB, types.ConfidenceLow, assumption)

	return sumCosts(hourlyCost, dataCost)
}
