// Package pricing implements the retrying AWS pricing catalog client (spec
// §4.3): an in-memory layer backed by the on-disk cache.Manager, falling
// through to an HTTP catalog lookup with bounded exponential backoff, and
// never surfacing a failure to callers — a price is either found or it
// isn't.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cdk-cost-analyzer/core/pricing/cache"
	"cdk-cost-analyzer/core/pricing/cachekey"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/errors"
	"cdk-cost-analyzer/internal/logging"
)

// maxRetries is the number of retries after the first attempt: 4 attempts
// total, delays 1s/2s/4s (spec §4.3).
const maxRetries = 3

// HTTPDoer is the subset of *http.Client the Client depends on, so tests can
// substitute a fake transport without a real network call.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the pricing catalog client. Zero value is not usable; build one
// with New.
type Client struct {
	endpoint string
	http     HTTPDoer
	cache    *cache.Manager
	backoff  func(attempt int) time.Duration

	mu     sync.RWMutex
	memory map[string]decimal.Decimal
}

// New builds a Client against endpoint, persisting catalog lookups through
// cacheManager. endpoint is the base URL of the pricing catalog API; it is
// never sent a credential by this client (auth, if any, lives in the
// HTTPDoer's transport).
func New(endpoint string, cacheManager *cache.Manager, doer HTTPDoer) *Client {
	return &Client{
		endpoint: endpoint,
		http:     doer,
		cache:    cacheManager,
		backoff:  defaultBackoff,
		memory:   map[string]decimal.Decimal{},
	}
}

func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second // 1s, 2s, 4s
}

// GetPrice resolves params to a USD monthly unit price. A nil, nil result
// means the catalog has no matching price — not an error (spec §4.3). The
// only error this returns is ctx cancellation/deadline.
func (c *Client) GetPrice(ctx context.Context, params types.PriceQueryParams) (*decimal.Decimal, error) {
	key := cachekey.Of(params)

	if price, ok := c.getMemory(key); ok {
		return &price, nil
	}
	if price, ok := c.cache.GetCachedPrice(key); ok {
		c.setMemory(key, price)
		return &price, nil
	}

	price, err := c.fetchWithRetry(ctx, params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warn("pricing catalog lookup failed, falling back to stale cache",
			zap.String("service", params.ServiceCode), zap.Error(err))
		if stale, ok := c.cache.GetStalePrice(key); ok {
			c.setMemory(key, stale)
			return &stale, nil
		}
		return nil, nil
	}
	if price == nil {
		// Catalog reached, but no matching price dimension — not retryable,
		// not an error, just unpriced.
		if stale, ok := c.cache.GetStalePrice(key); ok {
			c.setMemory(key, stale)
			return &stale, nil
		}
		return nil, nil
	}

	c.setMemory(key, *price)
	if err := c.cache.SetCachedPrice(key, *price); err != nil {
		logging.Warn("failed to persist pricing cache entry", zap.Error(err))
	}
	return price, nil
}

func (c *Client) getMemory(key string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	price, ok := c.memory[key]
	return price, ok
}

func (c *Client) setMemory(key string, price decimal.Decimal) {
	c.mu.Lock()
	c.memory[key] = price
	c.mu.Unlock()
}

// fetchWithRetry performs the HTTP round trip, retrying retryable failures
// with exponential backoff. A nil, nil return means the catalog was reached
// successfully but contained no matching price.
func (c *Client) fetchWithRetry(ctx context.Context, params types.PriceQueryParams) (*decimal.Decimal, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt - 1)):
			}
		}

		price, retryable, err := c.fetchOnce(ctx, params)
		if err == nil {
			return price, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("pricing catalog lookup failed after %d attempts: %w", maxRetries+1, lastErr)
}

// fetchOnce performs a single HTTP round trip. The retryable bool tells the
// caller whether another attempt is worth making.
func (c *Client) fetchOnce(ctx context.Context, params types.PriceQueryParams) (price *decimal.Decimal, retryable bool, err error) {
	body, err := json.Marshal(toCatalogRequest(params))
	if err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err // network errors are retryable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("catalog returned %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, errors.New(errors.TypePricingUnavailable,
			fmt.Sprintf("catalog rejected query with status %d", resp.StatusCode))
	}

	var decoded catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, false, fmt.Errorf("decoding catalog response: %w", err)
	}

	value, ok := firstOnDemandUSDPrice(decoded)
	if !ok {
		return nil, false, nil
	}
	return &value, false, nil
}

func toCatalogRequest(params types.PriceQueryParams) catalogRequest {
	filters := make([]catalogFilter, 0, len(params.Filters)+1)
	filters = append(filters, catalogFilter{Type: "TERM_MATCH", Field: "regionCode", Value: params.Region})
	for _, f := range params.Filters {
		filters = append(filters, catalogFilter{Type: "TERM_MATCH", Field: f.Field, Value: f.Value})
	}
	return catalogRequest{ServiceCode: params.ServiceCode, Filters: filters, MaxResults: 1}
}

func parseUSD(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
