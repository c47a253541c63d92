// Package catalogs defines the read-only content lookups the core
// consumes. Catalog content itself is authored externally; the core
// only queries these interfaces and never mutates them, so they are
// safe to share without locking.
package catalogs

import (
	"github.com/quailworks/quail-api/internal/nest"
	"github.com/quailworks/quail-api/internal/progression"
	"github.com/quailworks/quail-api/internal/quest"
)

//go:generate mockgen -destination=mock/mock.go -package=catalogsmock -source=catalogs.go

// Location is one node in the world's location graph
type Location struct {
	ID         string
	RegionID   string
	BiomeID    string
	Difficulty int
	Hidden     bool
	FastTravel bool
}

// Region is static region content
type Region struct {
	ID         string
	Difficulty int
	Hidden     bool
}

// LocationCatalog exposes the world graph. Adjacency defines the
// graph-walk distance metric used for spatial priority.
type LocationCatalog interface {
	Location(id string) (Location, bool)
	Region(id string) (Region, bool)
	Neighbors(id string) []string
	Locations() []Location
	RegionIDs() []string
	BiomeIDs() []string
}

// TalentCatalog supplies archetype talent tree definitions
type TalentCatalog interface {
	TalentsFor(archetype progression.Archetype) (map[string]progression.Talent, bool)
}

// QuestCatalog supplies static quest content
type QuestCatalog interface {
	Quest(id string) (quest.Quest, bool)
}

// NestUpgradeCatalog supplies tier definitions per upgrade type
type NestUpgradeCatalog interface {
	TierDef(typ nest.UpgradeType, tier nest.Tier) (nest.TierDef, bool)
}

// Product is a purchasable store product. GlimmerAmount of zero marks
// an entitlement-only product. Non-consumable products map to an
// entitlement id restorable from receipts.
type Product struct {
	ID            string
	GlimmerAmount int64
	Consumable    bool
	EntitlementID string
}

// ProductCatalog resolves store product ids
type ProductCatalog interface {
	Product(id string) (Product, bool)
}
