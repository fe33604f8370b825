package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

const hoursPerMonth = 730 // 24 * 365 / 12, matching the teacher's ec2 mapper default

// EC2Calculator prices AWS::EC2::Instance by instance-hours, grounded on the
// teacher's clouds/aws/compute/ec2.go rate-key shape.
type EC2Calculator struct{}

func NewEC2Calculator() *EC2Calculator { return &EC2Calculator{} }

func (c *EC2Calculator) Supports(cfnType string) bool {
	return cfnType == "AWS::EC2::Instance"
}

func (c *EC2Calculator) CanCalculate(resource types.ResourceWithId) bool {
	return true
}

func (c *EC2Calculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	instanceType := stringProp(resource, "InstanceType", "t3.micro")
	tenancy := "Shared"
	if stringProp(resource, "Tenancy", "default") == "dedicated" {
		tenancy = "Dedicated"
	}

	params := types.PriceQueryParams{
		ServiceCode: "AmazonEC2",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "instanceType", Value: instanceType},
			{Field: "operatingSystem", Value: "Linux"},
			{Field: "tenancy", Value: tenancy},
			{Field: "preInstalledSw", Value: "NA"},
			{Field: "capacitystatus", Value: "Used"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for instance type "+instanceType)
	}

	return priced(*price, hoursPerMonth, types.ConfidenceHigh,
		"assumes 730 instance-hours/month (continuous run)")
}
