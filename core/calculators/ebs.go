package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// EBSCalculator prices AWS::EC2::Volume by GB-month, grounded on the
// teacher's clouds/aws/storage/ebs.go.
type EBSCalculator struct{}

func NewEBSCalculator() *EBSCalculator { return &EBSCalculator{} }

func (c *EBSCalculator) Supports(cfnType string) bool { return cfnType == "AWS::EC2::Volume" }

func (c *EBSCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *EBSCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	volumeType := stringProp(resource, "VolumeType", "gp3")
	size := floatProp(resource, "Size", 8)

	params := types.PriceQueryParams{
		ServiceCode: "AmazonEC2",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "volumeApiName", Value: volumeType},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for volume type "+volumeType)
	}

	cost := priced(*price, size, types.ConfidenceHigh, "declared volume size, "+volumeType)

	if volumeType == "io1" || volumeType == "io2" {
		iops := floatProp(resource, "Iops", 0)
		if iops > 0 {
			iopsParams := types.PriceQueryParams{
				ServiceCode: "AmazonEC2",
				Region:      rgn,
				Filters: []types.Filter{
					{Field: "usagetype", Value: region.UsageTypePrefix(rgn) + "EBS:VolumeP-IOPS.piops"},
					{Field: "location", Value: region.Location(rgn)},
				},
			}
			iopsPrice, err := client.GetPrice(ctx, iopsParams)
			if err == nil && iopsPrice != nil {
				cost = sumCosts(cost, priced(*iopsPrice, iops, types.ConfidenceHigh, "provisioned IOPS"))
			}
		}
	}

	return cost
}
