package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cdk-cost-analyzer/core/pricing/cache"
	"cdk-cost-analyzer/core/pricing/cachekey"
	"cdk-cost-analyzer/core/types"
)

type fakeDoer struct {
	responses []fakeResponse
	calls     int
}

type fakeResponse struct {
	status int
	body   string
	err    error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	r := f.responses[f.calls]
	f.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.status,
		Body:       io.NopCloser(bytes.NewBufferString(r.body)),
	}, nil
}

func noBackoff(c *Client) {
	c.backoff = func(int) time.Duration { return 0 }
}

func catalogBody(usd string) string {
	resp := catalogResponse{
		PriceList: []priceListEntry{
			{
				Terms: priceListTerms{
					OnDemand: map[string]map[string]priceListTerm{
						"SKU1": {
							"SKU1.TERM1": {
								PriceDimensions: map[string]priceDimension{
									"DIM1": {Unit: "Hrs", PricePerUnit: map[string]string{"USD": usd}},
								},
							},
						},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func testParams() types.PriceQueryParams {
	return types.PriceQueryParams{
		ServiceCode: "AmazonEC2",
		Region:      "us-east-1",
		Filters:     []types.Filter{{Field: "instanceType", Value: "t3.micro"}},
	}
}

func TestGetPriceHappyPath(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{{status: 200, body: catalogBody("0.0416")}}}
	c := New("http://catalog.example", cache.New(t.TempDir(), time.Hour), doer)
	noBackoff(c)

	price, err := c.GetPrice(context.Background(), testParams())
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price == nil || !price.Equal(decimal.RequireFromString("0.0416")) {
		t.Fatalf("price = %v, want 0.0416", price)
	}
}

func TestGetPriceMemoizesWithinProcess(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{{status: 200, body: catalogBody("1.0")}}}
	c := New("http://catalog.example", cache.New(t.TempDir(), time.Hour), doer)
	noBackoff(c)

	ctx := context.Background()
	if _, err := c.GetPrice(ctx, testParams()); err != nil {
		t.Fatalf("first GetPrice: %v", err)
	}
	if _, err := c.GetPrice(ctx, testParams()); err != nil {
		t.Fatalf("second GetPrice: %v", err)
	}
	if doer.calls != 1 {
		t.Fatalf("expected exactly one HTTP call, got %d", doer.calls)
	}
}

func TestGetPriceRetriesOn5xxThenSucceeds(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{
		{status: 503, body: ""},
		{status: 503, body: ""},
		{status: 200, body: catalogBody("2.5")},
	}}
	c := New("http://catalog.example", cache.New(t.TempDir(), time.Hour), doer)
	noBackoff(c)

	price, err := c.GetPrice(context.Background(), testParams())
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price == nil || !price.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("price = %v, want 2.5", price)
	}
	if doer.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", doer.calls)
	}
}

func TestGetPriceNonRetryable4xxFailsFast(t *testing.T) {
	doer := &fakeDoer{responses: []fakeResponse{{status: 400, body: ""}}}
	c := New("http://catalog.example", cache.New(t.TempDir(), time.Hour), doer)
	noBackoff(c)

	price, err := c.GetPrice(context.Background(), testParams())
	if err != nil {
		t.Fatalf("GetPrice should not surface an error, got %v", err)
	}
	if price != nil {
		t.Fatalf("expected nil price for unrecoverable 4xx, got %v", *price)
	}
	if doer.calls != 1 {
		t.Fatalf("expected no retries on a non-retryable 4xx, got %d calls", doer.calls)
	}
}

func TestGetPriceExhaustedRetriesFallsBackToStaleCache(t *testing.T) {
	dir := t.TempDir()
	cm := cache.New(dir, -time.Second) // entries are immediately stale
	params := testParams()
	_ = cm.SetCachedPrice(cachekey.Of(params), decimal.NewFromFloat(9.99))

	doer := &fakeDoer{responses: []fakeResponse{
		{status: 503}, {status: 503}, {status: 503}, {status: 503},
	}}
	c := New("http://catalog.example", cm, doer)
	noBackoff(c)

	price, err := c.GetPrice(context.Background(), params)
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price == nil || !price.Equal(decimal.NewFromFloat(9.99)) {
		t.Fatalf("price = %v, want fallback to stale 9.99", price)
	}
	if doer.calls != 4 {
		t.Fatalf("expected all 4 attempts exhausted, got %d", doer.calls)
	}
}

func TestGetPriceNoMatchingDimensionReturnsNilNotError(t *testing.T) {
	emptyBody, _ := json.Marshal(catalogResponse{})
	doer := &fakeDoer{responses: []fakeResponse{{status: 200, body: string(emptyBody)}}}
	c := New("http://catalog.example", cache.New(t.TempDir(), time.Hour), doer)
	noBackoff(c)

	price, err := c.GetPrice(context.Background(), testParams())
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price != nil {
		t.Fatalf("expected nil price for an empty catalog response, got %v", *price)
	}
}
