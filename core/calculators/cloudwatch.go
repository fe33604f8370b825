package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// assumedLogIngestionGB is the documented default monthly log volume used
// to price a LogGroup with no retention-driven sizing signal.
const assumedLogIngestionGB = 5.0

// LogGroupCalculator prices AWS::Logs::LogGroup by assumed ingestion
// volume, grounded on the teacher's clouds/aws/observability/cloudwatch.go.
type LogGroupCalculator struct{}

func NewLogGroupCalculator() *LogGroupCalculator { return &LogGroupCalculator{} }

func (c *LogGroupCalculator) Supports(cfnType string) bool { return cfnType == "AWS::Logs::LogGroup" }

func (c *LogGroupCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *LogGroupCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	params := types.PriceQueryParams{
		ServiceCode: "AmazonCloudWatch",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "CW:DataStorage"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for log storage")
	}

	return priced(*price, assumedLogIngestionGB, types.ConfidenceLow,
		"assumes 5 GB ingested/month")
}

// CloudWatchAlarmCalculator prices AWS::CloudWatch::Alarm per-alarm,
// deterministic from the alarm count alone.
type CloudWatchAlarmCalculator struct{}

func NewCloudWatchAlarmCalculator() *CloudWatchAlarmCalculator { return &CloudWatchAlarmCalculator{} }

func (c *CloudWatchAlarmCalculator) Supports(cfnType string) bool {
	return cfnType == "AWS::CloudWatch::Alarm"
}

func (c *CloudWatchAlarmCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *CloudWatchAlarmCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	params := types.PriceQueryParams{
		ServiceCode: "AmazonCloudWatch",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "CW:Alarms"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for CloudWatch alarms")
	}

	return priced(*price, 1, types.ConfidenceHigh, "one standard-resolution alarm")
}
