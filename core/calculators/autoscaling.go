package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// defaultASGInstanceType is used when the LaunchTemplate can't be resolved
// at all — a named fallback per spec §4.6's cross-resource resolution rule.
const defaultASGInstanceType = "t3.micro"

// AutoScalingCalculator prices AWS::AutoScaling::AutoScalingGroup by
// resolving its LaunchTemplate sibling for instance type, then pricing it
// like an EC2 instance scaled by desired capacity. Grounded on the
// teacher's clouds/aws/compute/autoscaling.go.
type AutoScalingCalculator struct {
	ec2 *EC2Calculator
}

func NewAutoScalingCalculator() *AutoScalingCalculator {
	return &AutoScalingCalculator{ec2: NewEC2Calculator()}
}

func (c *AutoScalingCalculator) Supports(cfnType string) bool {
	return cfnType == "AWS::AutoScaling::AutoScalingGroup"
}

func (c *AutoScalingCalculator) CanCalculate(resource types.ResourceWithId) bool {
	return true
}

func (c *AutoScalingCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	desired := floatProp(resource, "DesiredCapacity", 1)

	instanceType, confidence, assumption := c.resolveInstanceType(resource, siblings)

	params := types.PriceQueryParams{
		ServiceCode: "AmazonEC2",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "instanceType", Value: instanceType},
			{Field: "operatingSystem", Value: "Linux"},
			{Field: "tenancy", Value: "Shared"},
			{Field: "preInstalledSw", Value: "NA"},
			{Field: "capacitystatus", Value: "Used"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for instance type "+instanceType)
	}

	return priced(*price, hoursPerMonth*desired, confidence, assumption)
}

// resolveInstanceType dereferences the LaunchTemplate referenced by
// resource's LaunchTemplate.LaunchTemplateId (a Ref) by logical id among
// siblings; LaunchTemplateName is not read. A missing or unresolvable
// reference downgrades confidence and falls back to a named default, never
// an error.
func (c *AutoScalingCalculator) resolveInstanceType(resource types.ResourceWithId, siblings []types.ResourceWithId) (instanceType string, confidence types.Confidence, assumption string) {
	ltSpec, ok := resource.Properties["LaunchTemplate"].(map[string]interface{})
	if !ok {
		return defaultASGInstanceType, types.ConfidenceLow,
			"no LaunchTemplate specified, assumed " + defaultASGInstanceType
	}

	refID := ""
	if v, ok := ltSpec["LaunchTemplateId"].(map[string]interface{}); ok {
		if ref, ok := v["Ref"].(string); ok {
			refID = ref
		}
	}
	if refID == "" {
		return defaultASGInstanceType, types.ConfidenceLow,
			"LaunchTemplate reference could not be resolved, assumed " + defaultASGInstanceType
	}

	sibling, found := findSibling(siblings, refID)
	if !found || sibling.Type != "AWS::EC2::LaunchTemplate" {
		return defaultASGInstanceType, types.ConfidenceMedium,
			"referenced LaunchTemplate " + refID + " not found, assumed " + defaultASGInstanceType
	}

	data, ok := sibling.Properties["LaunchTemplateData"].(map[string]interface{})
	if !ok {
		return defaultASGInstanceType, types.ConfidenceMedium,
			"LaunchTemplate " + refID + " has no LaunchTemplateData, assumed " + defaultASGInstanceType
	}
	it, ok := data["InstanceType"].(string)
	if !ok || it == "" {
		return defaultASGInstanceType, types.ConfidenceMedium,
			"LaunchTemplate " + refID + " specifies no InstanceType, assumed " + defaultASGInstanceType
	}

	return it, types.ConfidenceHigh, "resolved instance type " + it + " from LaunchTemplate " + refID
}
