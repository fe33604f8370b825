package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"cdk-cost-analyzer/core/calculators"
	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/pricing/cache"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

type fixedPriceDoer struct{ usd string }

func (d *fixedPriceDoer) Do(req *http.Request) (*http.Response, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"PriceList": []map[string]interface{}{{
			"terms": map[string]interface{}{
				"OnDemand": map[string]interface{}{
					"SKU": map[string]interface{}{
						"SKU.TERM": map[string]interface{}{
							"priceDimensions": map[string]interface{}{
								"DIM": map[string]interface{}{"unit": "Hrs", "pricePerUnit": map[string]string{"USD": d.usd}},
							},
						},
					},
				},
			},
		}},
	})
	return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func testService(t *testing.T, usd string, excluded ...string) *Service {
	t.Helper()
	client := pricing.New("http://catalog.example", cache.New(t.TempDir(), time.Hour), &fixedPriceDoer{usd: usd})
	return New(client, calculators.Default(), excluded, config.UsageAssumptions{})
}

func ec2Resource(id, instanceType string) types.ResourceWithId {
	return types.ResourceWithId{LogicalID: id, Type: "AWS::EC2::Instance", Properties: map[string]interface{}{"InstanceType": instanceType}}
}

func TestGetResourceCostExcluded(t *testing.T) {
	svc := testService(t, "1.0", "AWS::EC2::Instance")
	cost := svc.GetResourceCost(context.Background(), ec2Resource("Web", "t3.micro"), "us-east-1", nil)
	if cost.Confidence != types.ConfidenceHigh || !cost.Amount.IsZero() {
		t.Fatalf("expected zero-cost high-confidence exclusion, got %+v", cost)
	}
}

func TestGetResourceCostUnknownType(t *testing.T) {
	svc := testService(t, "1.0")
	r := types.ResourceWithId{LogicalID: "Mystery", Type: "AWS::Made::Up", Properties: map[string]interface{}{}}
	cost := svc.GetResourceCost(context.Background(), r, "us-east-1", nil)
	if cost.Confidence != types.ConfidenceUnknown || !cost.Amount.IsZero() {
		t.Fatalf("expected unknown zero cost, got %+v", cost)
	}
}

func TestGetCostDeltaAddedAndRemoved(t *testing.T) {
	svc := testService(t, "0.05")
	diff := types.ResourceDiff{
		Added:   []types.ResourceWithId{ec2Resource("New", "t3.micro")},
		Removed: []types.ResourceWithId{ec2Resource("Old", "t3.micro")},
	}

	delta, err := svc.GetCostDelta(context.Background(), diff, "us-east-1")
	if err != nil {
		t.Fatalf("GetCostDelta: %v", err)
	}
	if !delta.TotalDelta.IsZero() {
		t.Fatalf("expected added and removed identical instances to net to zero, got %s", delta.TotalDelta)
	}
	if len(delta.AddedCosts) != 1 || len(delta.RemovedCosts) != 1 {
		t.Fatalf("expected one added and one removed entry, got %+v", delta)
	}
}

func TestGetCostDeltaModifiedInheritsLowerConfidence(t *testing.T) {
	svc := testService(t, "0.05")
	diff := types.ResourceDiff{
		Modified: []types.ModifiedPair{
			{
				LogicalID:     "Web",
				Type:          "AWS::EC2::Instance",
				OldProperties: map[string]interface{}{"InstanceType": "t3.micro"},
				NewProperties: map[string]interface{}{"InstanceType": "t3.large"},
			},
		},
	}

	delta, err := svc.GetCostDelta(context.Background(), diff, "us-east-1")
	if err != nil {
		t.Fatalf("GetCostDelta: %v", err)
	}
	if len(delta.ModifiedCosts) != 1 {
		t.Fatalf("expected one modified entry, got %d", len(delta.ModifiedCosts))
	}
	m := delta.ModifiedCosts[0]
	if m.Confidence != types.ConfidenceHigh {
		t.Fatalf("expected combined confidence high for deterministic EC2 pricing on both sides, got %s", m.Confidence)
	}
}

// TestGetCostDeltaModifiedCombinedConfidenceNeverCorruptsAmount guards against
// regressing to overwriting OldMonthlyCost/NewMonthlyCost.Confidence directly:
// if one side resolves unknown (amount zero) and the other resolves with a
// real nonzero amount, the combined Confidence field must carry the
// pessimistic value while each side's own MonthlyCost keeps its own
// confidence paired with its own amount.
func TestGetCostDeltaModifiedCombinedConfidenceNeverCorruptsAmount(t *testing.T) {
	svc := testService(t, "0.05")
	diff := types.ResourceDiff{
		Modified: []types.ModifiedPair{
			{
				LogicalID:     "Svc",
				Type:          "AWS::ECS::Service",
				OldProperties: map[string]interface{}{"LaunchType": "EC2", "DesiredCount": 2.0},
				NewProperties: map[string]interface{}{"LaunchType": "FARGATE", "DesiredCount": 2.0},
			},
		},
	}

	delta, err := svc.GetCostDelta(context.Background(), diff, "us-east-1")
	if err != nil {
		t.Fatalf("GetCostDelta: %v", err)
	}
	m := delta.ModifiedCosts[0]

	if m.OldMonthlyCost.Confidence != types.ConfidenceUnknown || !m.OldMonthlyCost.Amount.IsZero() {
		t.Fatalf("expected the EC2-launch-type side to stay unknown/zero, got %+v", m.OldMonthlyCost)
	}
	if m.NewMonthlyCost.Confidence == types.ConfidenceUnknown || m.NewMonthlyCost.Amount.IsZero() {
		t.Fatalf("expected the Fargate side to price with a nonzero amount, got %+v", m.NewMonthlyCost)
	}
	if m.Confidence != types.ConfidenceUnknown {
		t.Fatalf("expected the combined Confidence field to pessimistically report unknown, got %s", m.Confidence)
	}
	if m.NewMonthlyCost.Confidence == types.ConfidenceUnknown {
		t.Fatalf("combining confidence must not have overwritten NewMonthlyCost's own confidence")
	}
}

func TestGetCostDeltaEmptyDiffIsEmpty(t *testing.T) {
	svc := testService(t, "0.05")
	delta, err := svc.GetCostDelta(context.Background(), types.ResourceDiff{}, "us-east-1")
	if err != nil {
		t.Fatalf("GetCostDelta: %v", err)
	}
	if !delta.IsEmpty() {
		t.Fatalf("expected an empty delta, got %+v", delta)
	}
}
