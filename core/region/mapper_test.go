package region

import "testing"

func TestLocationKnownRegion(t *testing.T) {
	if got := Location("us-east-1"); got != "US East (N. Virginia)" {
		t.Errorf("Location(us-east-1) = %q", got)
	}
	if got := Location("eu-central-1"); got != "EU (Frankfurt)" {
		t.Errorf("Location(eu-central-1) = %q", got)
	}
}

func TestLocationUnknownRegionPassesThrough(t *testing.T) {
	if got := Location("mars-central-1"); got != "mars-central-1" {
		t.Errorf("Location(unknown) = %q, want passthrough", got)
	}
}

func TestUsageTypePrefix(t *testing.T) {
	if got := UsageTypePrefix("eu-central-1"); got != "EUC1-" {
		t.Errorf("UsageTypePrefix(eu-central-1) = %q", got)
	}
	if got := UsageTypePrefix("us-east-1"); got != "" {
		t.Errorf("UsageTypePrefix(us-east-1) = %q, want empty", got)
	}
}

func TestUsageTypePrefixUnknownRegionIsEmpty(t *testing.T) {
	if got := UsageTypePrefix("mars-central-1"); got != "" {
		t.Errorf("UsageTypePrefix(unknown) = %q, want empty", got)
	}
}
