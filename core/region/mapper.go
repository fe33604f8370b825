// Package region normalizes AWS region codes into the two shapes the
// pricing catalog and usagetype filters expect (spec §4.5). The tables are
// grounded on the pricing catalog's own region-to-location naming scheme.
package region

// locationByRegion maps an AWS region code to the "location" attribute used
// in AWS pricing catalog filters.
var locationByRegion = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"eu-west-1":      "EU (Ireland)",
	"eu-west-2":      "EU (London)",
	"eu-west-3":      "EU (Paris)",
	"eu-central-1":   "EU (Frankfurt)",
	"eu-north-1":     "EU (Stockholm)",
	"eu-south-1":     "EU (Milan)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-northeast-3": "Asia Pacific (Osaka)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-southeast-3": "Asia Pacific (Jakarta)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ap-east-1":      "Asia Pacific (Hong Kong)",
	"sa-east-1":      "South America (Sao Paulo)",
	"ca-central-1":   "Canada (Central)",
	"me-south-1":     "Middle East (Bahrain)",
	"me-central-1":   "Middle East (UAE)",
	"af-south-1":     "Africa (Cape Town)",
}

// usageTypePrefixByRegion maps an AWS region code to the prefix AWS attaches
// to usagetype filter values outside of us-east-1 (which carries no
// prefix). Calculators prepend this when constructing a usagetype filter.
var usageTypePrefixByRegion = map[string]string{
	"us-east-1":      "",
	"us-east-2":      "USE2-",
	"us-west-1":      "USW1-",
	"us-west-2":      "USW2-",
	"eu-west-1":      "EU-",
	"eu-west-2":      "EUW2-",
	"eu-west-3":      "EUW3-",
	"eu-central-1":   "EUC1-",
	"eu-north-1":     "EUN1-",
	"eu-south-1":     "EUS1-",
	"ap-northeast-1": "APN1-",
	"ap-northeast-2": "APN2-",
	"ap-northeast-3": "APN3-",
	"ap-southeast-1": "APS1-",
	"ap-southeast-2": "APS2-",
	"ap-southeast-3": "APS4-",
	"ap-south-1":     "APS3-",
	"ap-east-1":      "APE1-",
	"sa-east-1":      "SAE1-",
	"ca-central-1":   "CAN1-",
	"me-south-1":     "MES1-",
	"me-central-1":   "MEC1-",
	"af-south-1":     "AFS1-",
}

// Location returns the catalog "location" attribute for an AWS region code.
// Unknown regions pass through unchanged (spec §4.5).
func Location(awsRegion string) string {
	if loc, ok := locationByRegion[awsRegion]; ok {
		return loc
	}
	return awsRegion
}

// UsageTypePrefix returns the usagetype filter prefix for an AWS region
// code. Unknown regions yield an empty prefix (spec §4.5).
func UsageTypePrefix(awsRegion string) string {
	return usageTypePrefixByRegion[awsRegion]
}

// Known reports whether awsRegion appears in the region tables.
func Known(awsRegion string) bool {
	_, ok := locationByRegion[awsRegion]
	return ok
}
