package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// Documented default request volumes for queue/topic services that carry no
// throughput property in CloudFormation.
const (
	assumedSQSRequestsMillions = 1.0
	assumedSNSPublishesMillion = 1.0
)

// SQSCalculator prices AWS::SQS::Queue by assumed request volume, grounded
// on the teacher's clouds/aws/messaging/sqs_sns.go and the damon-houk
// messaging adapter.
type SQSCalculator struct{}

func NewSQSCalculator() *SQSCalculator { return &SQSCalculator{} }

func (c *SQSCalculator) Supports(cfnType string) bool { return cfnType == "AWS::SQS::Queue" }

func (c *SQSCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *SQSCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	queueType := "standard"
	if boolProp(resource, "FifoQueue", false) {
		queueType = "fifo"
	}

	params := types.PriceQueryParams{
		ServiceCode: "AWSQueueService",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "queueType", Value: queueType},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for SQS "+queueType+" queue")
	}

	return priced(*price, assumedSQSRequestsMillions*1_000_000, types.ConfidenceLow,
		"assumes 1,000,000 requests/month")
}

// SNSCalculator prices AWS::SNS::Topic by assumed publish volume.
type SNSCalculator struct{}

func NewSNSCalculator() *SNSCalculator { return &SNSCalculator{} }

func (c *SNSCalculator) Supports(cfnType string) bool { return cfnType == "AWS::SNS::Topic" }

func (c *SNSCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *SNSCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	params := types.PriceQueryParams{
		ServiceCode: "AmazonSNS",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "group", Value: "SNS-Requests-Tier1"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for SNS publishes")
	}

	return priced(*price, assumedSNSPublishesMillion*1_000_000, types.ConfidenceLow,
		"assumes 1,000,000 publishes/month")
}
