package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// ElastiCacheCalculator prices AWS::ElastiCache::CacheCluster and
// AWS::ElastiCache::ReplicationGroup by node-hours, grounded on the
// teacher's clouds/aws/database/elasticache.go.
type ElastiCacheCalculator struct{}

func NewElastiCacheCalculator() *ElastiCacheCalculator { return &ElastiCacheCalculator{} }

func (c *ElastiCacheCalculator) Supports(cfnType string) bool {
	return cfnType == "AWS::ElastiCache::CacheCluster" || cfnType == "AWS::ElastiCache::ReplicationGroup"
}

func (c *ElastiCacheCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *ElastiCacheCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	nodeType := stringProp(resource, "CacheNodeType", "cache.t3.micro")
	engine := stringProp(resource, "Engine", "redis")

	nodeCount := float64(intProp(resource, "NumCacheNodes", 1))
	if resource.Type == "AWS::ElastiCache::ReplicationGroup" {
		nodeCount = float64(intProp(resource, "NumCacheClusters", 1))
		if clusters, ok := resource.Properties["NodeGroupConfiguration"].([]interface{}); ok {
			nodeCount = float64(len(clusters))
			if nodeCount == 0 {
				nodeCount = 1
			}
		}
	}

	params := types.PriceQueryParams{
		ServiceCode: "AmazonElastiCache",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "instanceType", Value: nodeType},
			{Field: "cacheEngine", Value: engine},
			{Field: "location", Value: region.Location(rgn)},
		},
	}

	price, err := client.GetPrice(ctx, params)
	if err != nil || price == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for cache node type "+nodeType)
	}

	return priced(*price, hoursPerMonth*nodeCount, types.ConfidenceHigh,
		"assumes 730 node-hours/month per cache node")
}
