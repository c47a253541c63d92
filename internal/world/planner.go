package world

import (
	"sort"
)

// Pressure thresholds at which the planner starts shedding tiers
const (
	dropFarRatio  = 0.5
	dropNearRatio = 0.8
)

// Plan is one bucket's update decision: the tier of every location
// and the tiers throttled away this cycle. IMMEDIATE is never
// throttled.
type Plan struct {
	Tiers     map[string]Tier
	Throttled map[Tier]bool
}

// Locations returns the location ids a non-critical system should
// update under this plan, sorted for deterministic iteration.
// INACTIVE locations are never included.
func (p Plan) Locations() []string {
	out := make([]string, 0, len(p.Tiers))
	for id, tier := range p.Tiers {
		if tier == TierInactive || p.Throttled[tier] {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AllLocations returns every non-INACTIVE location regardless of
// throttling, for critical systems.
func (p Plan) AllLocations() []string {
	out := make([]string, 0, len(p.Tiers))
	for id, tier := range p.Tiers {
		if tier == TierInactive {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AdaptivePlanner combines the spatial partition with frame budget
// pressure. Under pressure it sheds the FAR tier first, then NEAR;
// IMMEDIATE always updates.
type AdaptivePlanner struct {
	index   *SpatialIndex
	monitor *FrameBudgetMonitor
}

// NewAdaptivePlanner wires the planner's inputs
func NewAdaptivePlanner(index *SpatialIndex, monitor *FrameBudgetMonitor) *AdaptivePlanner {
	return &AdaptivePlanner{index: index, monitor: monitor}
}

// PlanUpdates builds the update plan for one bucket cycle
func (p *AdaptivePlanner) PlanUpdates(playerLocationID string) Plan {
	plan := Plan{
		Tiers:     p.index.Partition(playerLocationID),
		Throttled: make(map[Tier]bool),
	}

	ratio := p.monitor.OverBudgetRatio()
	if ratio >= dropFarRatio {
		plan.Throttled[TierFar] = true
	}
	if ratio >= dropNearRatio {
		plan.Throttled[TierNear] = true
	}
	return plan
}
