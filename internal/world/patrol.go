package world

import (
	"context"
	"sync"
	"time"

	"github.com/quailworks/quail-api/internal/errors"
)

// TimeOfDay keys patrol routes to the in-world clock
type TimeOfDay string

// Time-of-day bands
const (
	TimeDawn  TimeOfDay = "DAWN"
	TimeDay   TimeOfDay = "DAY"
	TimeDusk  TimeOfDay = "DUSK"
	TimeNight TimeOfDay = "NIGHT"
)

// TimeOfDayAt maps a wall-clock hour onto the band: dawn 5-8, day
// 8-18, dusk 18-21, night otherwise.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 8:
		return TimeDawn
	case h >= 8 && h < 18:
		return TimeDay
	case h >= 18 && h < 21:
		return TimeDusk
	default:
		return TimeNight
	}
}

// Waypoint is one stop on a patrol route
type Waypoint struct {
	LocationID string
	X          float64
	Y          float64
}

// Route is a time-of-day keyed waypoint sequence. Looping routes wrap
// from the last waypoint back to the first; others hold at the end.
type Route struct {
	Waypoints []Waypoint
	Loop      bool
}

// Position is an NPC's interpolated location
type Position struct {
	LocationID string
	X          float64
	Y          float64
}

// patrol is one NPC's live patrol state
type patrol struct {
	npcID    string
	routes   map[TimeOfDay]Route
	band     TimeOfDay
	leg      int
	progress float64
	holding  bool
}

// PatrolManager advances NPC patrols along their routes on the 5m
// bucket and keeps per-location threat bookkeeping. It implements
// SpatialSystem: NPCs standing in throttled or INACTIVE locations do
// not move.
type PatrolManager struct {
	mu sync.Mutex

	patrols map[string]*patrol
	step    float64
	threats map[string]int
}

// DefaultPatrolStep is the per-update leg fraction an NPC advances
const DefaultPatrolStep = 0.25

// NewPatrolManager creates a manager advancing step of a leg per
// update. A step of zero or less uses DefaultPatrolStep.
func NewPatrolManager(step float64) *PatrolManager {
	if step <= 0 {
		step = DefaultPatrolStep
	}
	return &PatrolManager{
		patrols: make(map[string]*patrol),
		step:    step,
		threats: make(map[string]int),
	}
}

// Name identifies the system in logs
func (m *PatrolManager) Name() string { return "patrols" }

// Critical reports false: patrols are throttleable
func (m *PatrolManager) Critical() bool { return false }

// AddPatrol registers an NPC's routes. Every route needs at least one
// waypoint.
func (m *PatrolManager) AddPatrol(npcID string, routes map[TimeOfDay]Route) error {
	if npcID == "" {
		return errors.InvalidArgument("npcID is required")
	}
	if len(routes) == 0 {
		return errors.InvalidArgument("at least one route is required")
	}
	for band, route := range routes {
		if len(route.Waypoints) == 0 {
			return errors.InvalidArgumentf("route %s has no waypoints", band)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.patrols[npcID] = &patrol{npcID: npcID, routes: routes}
	return nil
}

// Update advances every patrol whose current location is eligible.
// Threat decays by one per update regardless of eligibility.
func (m *PatrolManager) Update(_ context.Context, now time.Time, locationIDs []string) error {
	eligible := make(map[string]bool, len(locationIDs))
	for _, id := range locationIDs {
		eligible[id] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	band := TimeOfDayAt(now)
	for _, p := range m.patrols {
		pos, ok := m.positionLocked(p)
		if !ok || !eligible[pos.LocationID] {
			continue
		}
		m.advanceLocked(p, band)
	}

	for id, threat := range m.threats {
		if threat <= 1 {
			delete(m.threats, id)
			continue
		}
		m.threats[id] = threat - 1
	}
	return nil
}

// advanceLocked moves one patrol a step along its active route,
// switching routes when the time-of-day band changed.
func (m *PatrolManager) advanceLocked(p *patrol, band TimeOfDay) {
	if p.band != band {
		if _, ok := p.routes[band]; ok {
			p.band = band
			p.leg = 0
			p.progress = 0
			p.holding = false
		}
	}

	route, ok := p.routes[p.band]
	if !ok || p.holding || len(route.Waypoints) < 2 {
		return
	}

	p.progress += m.step
	for p.progress >= 1 {
		p.progress -= 1
		p.leg++
		if p.leg >= len(route.Waypoints)-1 {
			if route.Loop {
				p.leg = 0
			} else {
				p.leg = len(route.Waypoints) - 1
				p.progress = 0
				p.holding = true
				return
			}
		}
	}
}

// Position reports an NPC's interpolated position
func (m *PatrolManager) Position(npcID string) (Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.patrols[npcID]
	if !ok {
		return Position{}, false
	}
	return m.positionLocked(p)
}

func (m *PatrolManager) positionLocked(p *patrol) (Position, bool) {
	route, ok := p.routes[p.band]
	if !ok {
		// Not yet switched into a banded route; fall back to any.
		for band, r := range p.routes {
			p.band = band
			route = r
			ok = true
			break
		}
		if !ok {
			return Position{}, false
		}
	}

	from := route.Waypoints[p.leg]
	if p.holding || p.leg >= len(route.Waypoints)-1 {
		return Position{LocationID: from.LocationID, X: from.X, Y: from.Y}, true
	}

	to := route.Waypoints[p.leg+1]
	return Position{
		LocationID: from.LocationID,
		X:          from.X + (to.X-from.X)*p.progress,
		Y:          from.Y + (to.Y-from.Y)*p.progress,
	}, true
}

// RecordIntrusion bumps a location's territory threat
func (m *PatrolManager) RecordIntrusion(locationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threats[locationID]++
}

// Threat reads a location's current territory threat
func (m *PatrolManager) Threat(locationID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threats[locationID]
}
