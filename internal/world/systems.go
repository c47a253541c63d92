package world

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

// WeatherKind is a weather condition over one location
type WeatherKind string

// Weather conditions
const (
	WeatherClear WeatherKind = "CLEAR"
	WeatherRain  WeatherKind = "RAIN"
	WeatherWind  WeatherKind = "WIND"
	WeatherFog   WeatherKind = "FOG"
	WeatherStorm WeatherKind = "STORM"
)

var weatherCycle = []WeatherKind{
	WeatherClear, WeatherWind, WeatherClear, WeatherRain,
	WeatherFog, WeatherClear, WeatherStorm, WeatherRain,
}

// WeatherSystem rotates each location through a weather cycle, phase
// shifted per location. Weather drives gameplay modifiers everywhere,
// so it is critical and never throttled.
type WeatherSystem struct {
	mu sync.Mutex

	phase   int
	current map[string]WeatherKind
}

// NewWeatherSystem creates a weather system with everything clear
func NewWeatherSystem() *WeatherSystem {
	return &WeatherSystem{current: make(map[string]WeatherKind)}
}

// Name identifies the system in logs
func (s *WeatherSystem) Name() string { return "weather" }

// Critical reports true: weather updates every active location
func (s *WeatherSystem) Critical() bool { return true }

// Update advances the weather cycle for the given locations
func (s *WeatherSystem) Update(_ context.Context, _ time.Time, locationIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase++
	for _, id := range locationIDs {
		h := fnv.New32a()
		h.Write([]byte(id))
		offset := int(h.Sum32() % uint32(len(weatherCycle)))
		s.current[id] = weatherCycle[(s.phase+offset)%len(weatherCycle)]
	}
	return nil
}

// WeatherAt reads the current weather over a location
func (s *WeatherSystem) WeatherAt(locationID string) WeatherKind {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.current[locationID]; ok {
		return w
	}
	return WeatherClear
}

// ResourceRespawnSystem regrows depleted forage nodes. Each depleted
// node waits a fixed number of fast-bucket updates before becoming
// available again; nodes in throttled locations wait longer in wall
// time, which is the throttling trade-off.
type ResourceRespawnSystem struct {
	mu sync.Mutex

	respawnTicks int
	depleted     map[string]map[string]int
}

// DefaultRespawnTicks is how many fast updates a node stays depleted
const DefaultRespawnTicks = 5

// NewResourceRespawnSystem creates the system. Ticks of zero or less
// uses DefaultRespawnTicks.
func NewResourceRespawnSystem(respawnTicks int) *ResourceRespawnSystem {
	if respawnTicks <= 0 {
		respawnTicks = DefaultRespawnTicks
	}
	return &ResourceRespawnSystem{
		respawnTicks: respawnTicks,
		depleted:     make(map[string]map[string]int),
	}
}

// Name identifies the system in logs
func (s *ResourceRespawnSystem) Name() string { return "resource_respawn" }

// Critical reports false: respawn is throttleable
func (s *ResourceRespawnSystem) Critical() bool { return false }

// Deplete marks a node consumed, starting its respawn countdown
func (s *ResourceRespawnSystem) Deplete(locationID, nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, ok := s.depleted[locationID]
	if !ok {
		nodes = make(map[string]int)
		s.depleted[locationID] = nodes
	}
	nodes[nodeID] = s.respawnTicks
}

// Available reports whether a node is ready to forage
func (s *ResourceRespawnSystem) Available(locationID, nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, ok := s.depleted[locationID]
	if !ok {
		return true
	}
	_, waiting := nodes[nodeID]
	return !waiting
}

// Update ticks the respawn countdowns for the given locations
func (s *ResourceRespawnSystem) Update(_ context.Context, _ time.Time, locationIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range locationIDs {
		nodes, ok := s.depleted[id]
		if !ok {
			continue
		}
		for nodeID, remaining := range nodes {
			if remaining <= 1 {
				delete(nodes, nodeID)
			} else {
				nodes[nodeID] = remaining - 1
			}
		}
		if len(nodes) == 0 {
			delete(s.depleted, id)
		}
	}
	return nil
}

// NPCState is an ambient NPC's behavior state
type NPCState string

// NPC behavior states
const (
	NPCIdle     NPCState = "IDLE"
	NPCForaging NPCState = "FORAGING"
	NPCResting  NPCState = "RESTING"
)

var npcCycle = []NPCState{NPCIdle, NPCForaging, NPCForaging, NPCResting}

// NPCBehaviorSystem cycles ambient NPCs through a simple behavior
// loop. NPCs in INACTIVE locations never receive updates, so their
// state freezes until the player comes back into range.
type NPCBehaviorSystem struct {
	mu sync.Mutex

	// npc id -> home location
	homes map[string]string
	// npc id -> index into npcCycle
	states map[string]int
}

// NewNPCBehaviorSystem creates an empty behavior system
func NewNPCBehaviorSystem() *NPCBehaviorSystem {
	return &NPCBehaviorSystem{
		homes:  make(map[string]string),
		states: make(map[string]int),
	}
}

// Name identifies the system in logs
func (s *NPCBehaviorSystem) Name() string { return "npc_behavior" }

// Critical reports false: NPC behavior is throttleable
func (s *NPCBehaviorSystem) Critical() bool { return false }

// AddNPC places an ambient NPC at its home location
func (s *NPCBehaviorSystem) AddNPC(npcID, locationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homes[npcID] = locationID
	s.states[npcID] = 0
}

// StateOf reads an NPC's current behavior state
func (s *NPCBehaviorSystem) StateOf(npcID string) (NPCState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.states[npcID]
	if !ok {
		return "", false
	}
	return npcCycle[idx%len(npcCycle)], true
}

// Update advances NPCs whose home location is eligible
func (s *NPCBehaviorSystem) Update(_ context.Context, _ time.Time, locationIDs []string) error {
	eligible := make(map[string]bool, len(locationIDs))
	for _, id := range locationIDs {
		eligible[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for npcID, home := range s.homes {
		if eligible[home] {
			s.states[npcID]++
		}
	}
	return nil
}

// Season is the world's coarse seasonal state
type Season string

// Seasons
const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonAutumn Season = "AUTUMN"
	SeasonWinter Season = "WINTER"
)

// SeasonSystem derives the season from the calendar month on the slow
// bucket. It is a plain bucket system, not spatial: seasons are
// global.
type SeasonSystem struct {
	mu      sync.Mutex
	current Season
}

// NewSeasonSystem creates a season system starting in spring
func NewSeasonSystem() *SeasonSystem {
	return &SeasonSystem{current: SeasonSpring}
}

// Name identifies the system in logs
func (s *SeasonSystem) Name() string { return "seasons" }

// Update recomputes the season from the month
func (s *SeasonSystem) Update(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch now.Month() {
	case time.March, time.April, time.May:
		s.current = SeasonSpring
	case time.June, time.July, time.August:
		s.current = SeasonSummer
	case time.September, time.October, time.November:
		s.current = SeasonAutumn
	default:
		s.current = SeasonWinter
	}
	return nil
}

// Current reads the current season
func (s *SeasonSystem) Current() Season {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
