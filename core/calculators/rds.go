package calculators

import (
	"context"

	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/region"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// RDSCalculator prices AWS::RDS::DBInstance by instance-hours plus
// allocated storage, grounded on the teacher's clouds/aws/database/rds.go.
type RDSCalculator struct{}

func NewRDSCalculator() *RDSCalculator { return &RDSCalculator{} }

func (c *RDSCalculator) Supports(cfnType string) bool { return cfnType == "AWS::RDS::DBInstance" }

func (c *RDSCalculator) CanCalculate(resource types.ResourceWithId) bool { return true }

func (c *RDSCalculator) Calculate(ctx context.Context, resource types.ResourceWithId, rgn string, client *pricing.Client, siblings []types.ResourceWithId, usage config.UsageAssumptions) types.MonthlyCost {
	instanceClass := stringProp(resource, "DBInstanceClass", "db.t3.micro")
	engine := dbEngineName(stringProp(resource, "Engine", "postgres"))
	multiAZ := boolProp(resource, "MultiAZ", false)
	deployment := "Single-AZ"
	if multiAZ {
		deployment = "Multi-AZ"
	}

	instanceParams := types.PriceQueryParams{
		ServiceCode: "AmazonRDS",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "instanceType", Value: instanceClass},
			{Field: "databaseEngine", Value: engine},
			{Field: "deploymentOption", Value: deployment},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	instancePrice, err := client.GetPrice(ctx, instanceParams)
	if err != nil || instancePrice == nil {
		return types.ZeroCost(types.ConfidenceUnknown, "no catalog price for DB instance class "+instanceClass)
	}

	instanceCost := priced(*instancePrice, hoursPerMonth, types.ConfidenceHigh,
		"assumes 730 instance-hours/month ("+deployment+")")

	storageGB := floatProp(resource, "AllocatedStorage", 20)
	storageType := rdsStorageUsageType(stringProp(resource, "StorageType", "gp2"))
	storageParams := types.PriceQueryParams{
		ServiceCode: "AmazonRDS",
		Region:      rgn,
		Filters: []types.Filter{
			{Field: "usagetype", Value: region.UsageTypePrefix(rgn) + storageType},
			{Field: "location", Value: region.Location(rgn)},
		},
	}
	storagePrice, err := client.GetPrice(ctx, storageParams)
	if err != nil || storagePrice == nil {
		return sumCosts(instanceCost, types.ZeroCost(types.ConfidenceMedium,
			"storage price unavailable, instance cost only"))
	}

	storageCost := priced(*storagePrice, storageGB, types.ConfidenceHigh,
		"allocated storage "+stringProp(resource, "StorageType", "gp2"))

	return sumCosts(instanceCost, storageCost)
}

func dbEngineName(engine string) string {
	switch engine {
	case "postgres":
		return "PostgreSQL"
	case "mysql":
		return "MySQL"
	case "mariadb":
		return "MariaDB"
	case "aurora-postgresql":
		return "Aurora PostgreSQL"
	case "aurora-mysql":
		return "Aurora MySQL"
	case "sqlserver-ex", "sqlserver-web", "sqlserver-se", "sqlserver-ee":
		return "SQL Server"
	case "oracle-se2", "oracle-ee":
		return "Oracle"
	default:
		return engine
	}
}

func rdsStorageUsageType(storageType string) string {
	switch storageType {
	case "io1", "io2":
		return "RDS:PIOPS-Storage"
	case "gp3":
		return "RDS:GP3-Storage"
	default:
		return "RDS:GP2-Storage"
	}
}
