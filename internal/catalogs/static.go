package catalogs

import (
	"github.com/quailworks/quail-api/internal/nest"
	"github.com/quailworks/quail-api/internal/progression"
	"github.com/quailworks/quail-api/internal/quest"
)

// StaticLocations is an in-memory LocationCatalog backed by plain
// maps. Content pipelines load into it at startup.
type StaticLocations struct {
	ByID      map[string]Location
	Regions   map[string]Region
	Adjacency map[string][]string
	Biomes    []string
}

// NewStaticLocations builds a catalog from a location list and an
// adjacency map.
func NewStaticLocations(locations []Location, regions []Region, adjacency map[string][]string) *StaticLocations {
	c := &StaticLocations{
		ByID:      make(map[string]Location, len(locations)),
		Regions:   make(map[string]Region, len(regions)),
		Adjacency: adjacency,
	}
	seenBiomes := make(map[string]bool)
	for _, loc := range locations {
		c.ByID[loc.ID] = loc
		if loc.BiomeID != "" && !seenBiomes[loc.BiomeID] {
			seenBiomes[loc.BiomeID] = true
			c.Biomes = append(c.Biomes, loc.BiomeID)
		}
	}
	for _, r := range regions {
		c.Regions[r.ID] = r
	}
	return c
}

// Location looks up a location by id
func (c *StaticLocations) Location(id string) (Location, bool) {
	loc, ok := c.ByID[id]
	return loc, ok
}

// Region looks up a region by id
func (c *StaticLocations) Region(id string) (Region, bool) {
	r, ok := c.Regions[id]
	return r, ok
}

// Neighbors returns the ids adjacent to a location
func (c *StaticLocations) Neighbors(id string) []string {
	return c.Adjacency[id]
}

// Locations returns every location
func (c *StaticLocations) Locations() []Location {
	out := make([]Location, 0, len(c.ByID))
	for _, loc := range c.ByID {
		out = append(out, loc)
	}
	return out
}

// RegionIDs returns every region id
func (c *StaticLocations) RegionIDs() []string {
	out := make([]string, 0, len(c.Regions))
	for id := range c.Regions {
		out = append(out, id)
	}
	return out
}

// BiomeIDs returns every biome id seen across locations
func (c *StaticLocations) BiomeIDs() []string {
	return c.Biomes
}

// StaticTalents is a map-backed TalentCatalog
type StaticTalents struct {
	Trees map[progression.Archetype]map[string]progression.Talent
}

// TalentsFor returns the talent definitions for an archetype
func (c *StaticTalents) TalentsFor(archetype progression.Archetype) (map[string]progression.Talent, bool) {
	talents, ok := c.Trees[archetype]
	return talents, ok
}

// StaticQuests is a map-backed QuestCatalog
type StaticQuests struct {
	ByID map[string]quest.Quest
}

// Quest looks up a quest by id
func (c *StaticQuests) Quest(id string) (quest.Quest, bool) {
	q, ok := c.ByID[id]
	return q, ok
}

// StaticNestUpgrades is a map-backed NestUpgradeCatalog
type StaticNestUpgrades struct {
	Defs map[nest.UpgradeType]map[nest.Tier]nest.TierDef
}

// TierDef looks up one tier definition
func (c *StaticNestUpgrades) TierDef(typ nest.UpgradeType, tier nest.Tier) (nest.TierDef, bool) {
	tiers, ok := c.Defs[typ]
	if !ok {
		return nest.TierDef{}, false
	}
	def, ok := tiers[tier]
	return def, ok
}

// StaticProducts is a map-backed ProductCatalog
type StaticProducts struct {
	ByID map[string]Product
}

// Product looks up a product by id
func (c *StaticProducts) Product(id string) (Product, bool) {
	p, ok := c.ByID[id]
	return p, ok
}
