package calculators

import (
	"context"
	"fmt"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// assumedS3StorageGB is the documented default storage volume used when a
// bucket carries no usable sizing hint — S3 buckets have no size property
// in CloudFormation, so this is unavoidably a low-confidence estimate.
const assumedS3StorageGB = 50.0

// S3Calculator prices AWS::S3::Bucket storage (Standard class), grounded on
// the teacher's clouds/aws/storage/s3.go.
type S3Calculator struct{}

func NewS3Calculator() *S3Calculator { return &S3Calculator{} }

func (c *S3Calculator) Supports(cfnType string) bool { return cfnType == "AWS::S3::Bucket" }

func (c *S3Calculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *S3Calculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	params := types.PriceQueryParams{
		ServiceCode: "AmazonS3",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "storageClass", Value: "General Purpose"},
			{Field: "volumeType", Value: "Standard"},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for S3 standard storage")
	}

	storageGB := assumedS3StorageGB
	assumption := "assumes 50 GB of Standard storage; CloudFormation carries no bucket size"
	if v, ok := usage.Float("s3", "storageGB"); ok {
		storageGB = v
		assumption = fmt.Sprintf("assumes %.0f GB of Standard storage (configured override)", storageGB)
	}

	return priced(*price, storageGB, types.ConfidenceLow, assumption)
}
