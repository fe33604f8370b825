package cachekey

import (
	"testing"

	"cdk-cost-analyzer/core/types"
)

func TestFilterOrderIndependence(t *testing.T) {
	a := types.PriceQueryParams{
		ServiceCode: "AmazonEC2",
		Region:      "us-east-1",
		Filters: []types.Filter{
			{Field: "instanceType", Value: "t3.micro"},
			{Field: "operatingSystem", Value: "Linux"},
		},
	}
	b := types.PriceQueryParams{
		ServiceCode: "AmazonEC2",
		Region:      "us-east-1",
		Filters: []types.Filter{
			{Field: "operatingSystem", Value: "Linux"},
			{Field: "instanceType", Value: "t3.micro"},
		},
	}

	if Of(a) != Of(b) {
		t.Errorf("expected identical keys regardless of filter order")
	}
}

func TestDifferentRegionDifferentKey(t *testing.T) {
	a := types.PriceQueryParams{ServiceCode: "AmazonEC2", Region: "us-east-1"}
	b := types.PriceQueryParams{ServiceCode: "AmazonEC2", Region: "eu-central-1"}
	if Of(a) == Of(b) {
		t.Errorf("expected different keys for different regions")
	}
}

func TestDifferentServiceDifferentKey(t *testing.T) {
	a := types.PriceQueryParams{ServiceCode: "AmazonEC2", Region: "us-east-1"}
	b := types.PriceQueryParams{ServiceCode: "AmazonRDS", Region: "us-east-1"}
	if Of(a) == Of(b) {
		t.Errorf("expected different keys for different services")
	}
}
