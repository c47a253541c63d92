package world

import (
	"github.com/quailworks/quail-api/internal/catalogs"
)

// Tier classifies a location by graph distance from the player
type Tier int

// Spatial tiers, ordered by proximity
const (
	TierImmediate Tier = iota
	TierNear
	TierFar
	TierInactive
)

// Distance thresholds for the tier cutoffs
const (
	nearDistance = 2
	farDistance  = 6
)

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case TierImmediate:
		return "IMMEDIATE"
	case TierNear:
		return "NEAR"
	case TierFar:
		return "FAR"
	default:
		return "INACTIVE"
	}
}

// SpatialIndex derives update tiers from graph-walk distance over the
// location adjacency graph. The player's location is IMMEDIATE,
// within 2 hops is NEAR, reachable within 6 hops is FAR, everything
// else (including unreachable locations) is INACTIVE.
type SpatialIndex struct {
	locations catalogs.LocationCatalog
}

// NewSpatialIndex builds an index over a location catalog
func NewSpatialIndex(locations catalogs.LocationCatalog) *SpatialIndex {
	return &SpatialIndex{locations: locations}
}

// Partition computes the tier of every catalog location relative to
// the player's location. An empty or unknown player location makes
// everything INACTIVE.
func (s *SpatialIndex) Partition(playerLocationID string) map[string]Tier {
	tiers := make(map[string]Tier)
	for _, loc := range s.locations.Locations() {
		tiers[loc.ID] = TierInactive
	}

	if playerLocationID == "" {
		return tiers
	}
	if _, ok := s.locations.Location(playerLocationID); !ok {
		return tiers
	}

	// BFS out to the FAR horizon.
	distances := map[string]int{playerLocationID: 0}
	queue := []string{playerLocationID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := distances[current]
		if d >= farDistance {
			continue
		}
		for _, neighbor := range s.locations.Neighbors(current) {
			if _, seen := distances[neighbor]; seen {
				continue
			}
			distances[neighbor] = d + 1
			queue = append(queue, neighbor)
		}
	}

	for id, d := range distances {
		if _, ok := tiers[id]; !ok {
			continue
		}
		tiers[id] = tierForDistance(d)
	}
	return tiers
}

// TierFor computes the tier of one location relative to the player
func (s *SpatialIndex) TierFor(playerLocationID, targetLocationID string) Tier {
	return s.Partition(playerLocationID)[targetLocationID]
}

func tierForDistance(d int) Tier {
	switch {
	case d == 0:
		return TierImmediate
	case d <= nearDistance:
		return TierNear
	case d <= farDistance:
		return TierFar
	default:
		return TierInactive
	}
}
