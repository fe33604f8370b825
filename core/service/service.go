// Package service implements the PricingService (spec §4.7): the entry
// point that turns a parsed Template/ResourceDiff into a priced CostDelta,
// fanning pricing queries out across a bounded worker pool.
package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"cdk-cost-analyzer/core/calculators"
	"cdk-cost-analyzer/core/pricing"
	"cdk-cost-analyzer/core/types"
	"cdk-cost-analyzer/internal/config"
)

// fanOutLimit bounds concurrent pricing queries so a large template doesn't
// exhaust the catalog's rate limit (spec §5).
const fanOutLimit = 8

// Service prices individual resources and whole diffs against a pricing
// catalog client and calculator registry.
type Service struct {
	client                *pricing.Client
	registry              *calculators.Registry
	excludedResourceTypes map[string]bool
	usageAssumptions      config.UsageAssumptions
}

// New builds a Service. excludedResourceTypes short-circuit to a high
// confidence zero cost regardless of calculator availability (spec §4.7).
// usageAssumptions carries the user's configured per-service overrides
// (spec §3); calculators fall back to their own documented defaults when it
// has no entry for them.
func New(client *pricing.Client, registry *calculators.Registry, excludedResourceTypes []string, usageAssumptions config.UsageAssumptions) *Service {
	excluded := make(map[string]bool, len(excludedResourceTypes))
	for _, t := range excludedResourceTypes {
		excluded[t] = true
	}
	return &Service{client: client, registry: registry, excludedResourceTypes: excluded, usageAssumptions: usageAssumptions}
}

// GetResourceCost prices a single resource against its siblings.
func (s *Service) GetResourceCost(ctx context.Context, resource types.ResourceWithId, region string, siblings []types.ResourceWithId) types.MonthlyCost {
	if s.excludedResourceTypes[resource.Type] {
		return types.ZeroCost(types.ConfidenceHigh, "excluded by configuration")
	}

	calc, ok := s.registry.Resolve(resource)
	if !ok {
		return types.ZeroCost(types.ConfidenceUnknown, "no calculator for "+resource.Type)
	}

	return calc.Calculate(ctx, resource, region, s.client, siblings, s.usageAssumptions)
}

// GetCostDelta prices every resource in diff concurrently, bounded by
// fanOutLimit, and assembles the result by logical id — result ordering is
// independent of which worker finishes first (spec §5).
func (s *Service) GetCostDelta(ctx context.Context, diff types.ResourceDiff, region string) (types.CostDelta, error) {
	siblings := append(append([]types.ResourceWithId(nil), diff.Added...), diff.Removed...)
	for _, m := range diff.Modified {
		siblings = append(siblings, types.ResourceWithId{LogicalID: m.LogicalID, Type: m.Type, Properties: m.NewProperties})
	}

	added := make([]types.ResourceCost, len(diff.Added))
	removed := make([]types.ResourceCost, len(diff.Removed))
	modified := make([]types.ModifiedResourceCost, len(diff.Modified))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(fanOutLimit)

	for i, r := range diff.Added {
		i, r := i, r
		group.Go(func() error {
			added[i] = types.ResourceCost{LogicalID: r.LogicalID, Type: r.Type, MonthlyCost: s.GetResourceCost(gctx, r, region, siblings)}
			return nil
		})
	}
	for i, r := range diff.Removed {
		i, r := i, r
		group.Go(func() error {
			removed[i] = types.ResourceCost{LogicalID: r.LogicalID, Type: r.Type, MonthlyCost: s.GetResourceCost(gctx, r, region, siblings)}
			return nil
		})
	}
	for i, m := range diff.Modified {
		i, m := i, m
		group.Go(func() error {
			oldResource := types.ResourceWithId{LogicalID: m.LogicalID, Type: m.Type, Properties: m.OldProperties}
			newResource := types.ResourceWithId{LogicalID: m.LogicalID, Type: m.Type, Properties: m.NewProperties}

			oldCost := s.GetResourceCost(gctx, oldResource, region, siblings)
			newCost := s.GetResourceCost(gctx, newResource, region, siblings)

			modified[i] = types.ModifiedResourceCost{
				LogicalID:      m.LogicalID,
				Type:           m.Type,
				OldMonthlyCost: oldCost,
				NewMonthlyCost: newCost,
				Confidence:     types.Lower(oldCost.Confidence, newCost.Confidence),
				CostDelta:      newCost.Amount.Sub(oldCost.Amount),
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return types.CostDelta{}, err
	}

	total := decimal.Zero
	for _, a := range added {
		total = total.Add(a.MonthlyCost.Amount)
	}
	for _, r := range removed {
		total = total.Sub(r.MonthlyCost.Amount)
	}
	for _, m := range modified {
		total = total.Add(m.CostDelta)
	}

	sortResourceCosts(added)
	sortResourceCosts(removed)
	sortModifiedCosts(modified)

	return types.CostDelta{
		TotalDelta:    total,
		Currency:      types.CurrencyUSD,
		AddedCosts:    added,
		RemovedCosts:  removed,
		ModifiedCosts: modified,
	}, nil
}

func sortResourceCosts(costs []types.ResourceCost) {
	sort.Slice(costs, func(i, j int) bool {
		if !costs[i].MonthlyCost.Amount.Equal(costs[j].MonthlyCost.Amount) {
			return costs[i].MonthlyCost.Amount.GreaterThan(costs[j].MonthlyCost.Amount)
		}
		return costs[i].LogicalID < costs[j].LogicalID
	})
}

func sortModifiedCosts(costs []types.ModifiedResourceCost) {
	sort.Slice(costs, func(i, j int) bool {
		di := costs[i].CostDelta.Abs()
		dj := costs[j].CostDelta.Abs()
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return costs[i].LogicalID < costs[j].LogicalID
	})
}
