// Package nest implements nest customization: cosmetic ownership and
// placement, and strictly sequential functional upgrade tiers.
package nest

import (
	"sort"
)

// Placement bounds and limits
const (
	CoordMin          = 0.0
	CoordMax          = 10.0
	MaxPlacedPerType  = 5
)

// UpgradeType identifies a functional nest upgrade
type UpgradeType string

// Functional upgrade types
const (
	UpgradeSeedStorage UpgradeType = "SEED_STORAGE"
	UpgradeIncubator   UpgradeType = "INCUBATOR"
	UpgradeLookout     UpgradeType = "LOOKOUT"
	UpgradePerch       UpgradeType = "PERCH"
)

// Tier is a functional upgrade tier. Progression is strictly
// TIER_1 -> TIER_2 -> TIER_3, never skippable.
type Tier string

// Tiers
const (
	Tier1 Tier = "TIER_1"
	Tier2 Tier = "TIER_2"
	Tier3 Tier = "TIER_3"
)

// Next returns the following tier, or false at TIER_3
func (t Tier) Next() (Tier, bool) {
	switch t {
	case Tier1:
		return Tier2, true
	case Tier2:
		return Tier3, true
	default:
		return t, false
	}
}

// TierDef is the static definition of one tier of one upgrade type,
// supplied by the catalog.
type TierDef struct {
	UpgradeType         UpgradeType    `json:"upgrade_type"`
	Tier                Tier           `json:"tier"`
	RequiredPlayerLevel int            `json:"required_player_level"`
	PrerequisiteTier    Tier           `json:"prerequisite_tier,omitempty"`
	SeedCost            int            `json:"seed_cost"`
	GlimmerCost         int64          `json:"glimmer_cost"`
	IngredientCosts     map[string]int `json:"ingredient_costs,omitempty"`
	BonusMagnitude      float64        `json:"bonus_magnitude"`
}

// FunctionalUpgrade is an owned upgrade's mutable state
type FunctionalUpgrade struct {
	Type        UpgradeType `json:"type"`
	CurrentTier Tier        `json:"current_tier"`
	Active      bool        `json:"active"`
}

// CosmeticPlacement positions one cosmetic instance in the nest
type CosmeticPlacement struct {
	InstanceID string  `json:"instance_id"`
	CosmeticID string  `json:"cosmetic_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Customization is the nest state owned by the player aggregate
type Customization struct {
	OwnedCosmetics     map[string]bool                   `json:"owned_cosmetics"`
	PlacedCosmetics    []CosmeticPlacement               `json:"placed_cosmetics,omitempty"`
	FunctionalUpgrades map[UpgradeType]FunctionalUpgrade `json:"functional_upgrades"`
}

// NewCustomization returns an empty nest
func NewCustomization() Customization {
	return Customization{
		OwnedCosmetics:     make(map[string]bool),
		FunctionalUpgrades: make(map[UpgradeType]FunctionalUpgrade),
	}
}

// Clone returns a deep copy
func (c Customization) Clone() Customization {
	next := Customization{
		OwnedCosmetics:     make(map[string]bool, len(c.OwnedCosmetics)),
		PlacedCosmetics:    append([]CosmeticPlacement(nil), c.PlacedCosmetics...),
		FunctionalUpgrades: make(map[UpgradeType]FunctionalUpgrade, len(c.FunctionalUpgrades)),
	}
	for id, v := range c.OwnedCosmetics {
		next.OwnedCosmetics[id] = v
	}
	for typ, up := range c.FunctionalUpgrades {
		next.FunctionalUpgrades[typ] = up
	}
	return next
}

// PlaceCode reports the outcome of a cosmetic placement
type PlaceCode string

// Placement outcomes
const (
	PlaceOK               PlaceCode = "OK"
	PlaceNotOwned         PlaceCode = "NOT_OWNED"
	PlaceOutOfBounds      PlaceCode = "OUT_OF_BOUNDS"
	PlaceTooManyInstances PlaceCode = "TOO_MANY_INSTANCES"
)

// AddCosmetic records ownership of a cosmetic
func (c Customization) AddCosmetic(cosmeticID string) Customization {
	next := c.Clone()
	next.OwnedCosmetics[cosmeticID] = true
	return next
}

// PlaceCosmetic places an owned cosmetic inside the nest's coordinate
// space, limited to MaxPlacedPerType instances per cosmetic type.
func (c Customization) PlaceCosmetic(instanceID, cosmeticID string, x, y float64) (Customization, PlaceCode) {
	if !c.OwnedCosmetics[cosmeticID] {
		return c, PlaceNotOwned
	}
	if x < CoordMin || x > CoordMax || y < CoordMin || y > CoordMax {
		return c, PlaceOutOfBounds
	}
	placed := 0
	for _, p := range c.PlacedCosmetics {
		if p.CosmeticID == cosmeticID {
			placed++
		}
	}
	if placed >= MaxPlacedPerType {
		return c, PlaceTooManyInstances
	}

	next := c.Clone()
	next.PlacedCosmetics = append(next.PlacedCosmetics, CosmeticPlacement{
		InstanceID: instanceID,
		CosmeticID: cosmeticID,
		X:          x,
		Y:          y,
	})
	return next, PlaceOK
}

// RemoveCosmetic removes a placed instance by id
func (c Customization) RemoveCosmetic(instanceID string) (Customization, bool) {
	for i, p := range c.PlacedCosmetics {
		if p.InstanceID == instanceID {
			next := c.Clone()
			next.PlacedCosmetics = append(next.PlacedCosmetics[:i], next.PlacedCosmetics[i+1:]...)
			return next, true
		}
	}
	return c, false
}

// GrantUpgrade records ownership of a functional upgrade at TIER_1,
// inactive. Granting an already-owned upgrade is a no-op.
func (c Customization) GrantUpgrade(typ UpgradeType) Customization {
	if _, ok := c.FunctionalUpgrades[typ]; ok {
		return c
	}
	next := c.Clone()
	next.FunctionalUpgrades[typ] = FunctionalUpgrade{Type: typ, CurrentTier: Tier1}
	return next
}

// SetUpgradeActive toggles an owned upgrade's active flag
func (c Customization) SetUpgradeActive(typ UpgradeType, active bool) (Customization, bool) {
	up, ok := c.FunctionalUpgrades[typ]
	if !ok {
		return c, false
	}
	next := c.Clone()
	up.Active = active
	next.FunctionalUpgrades[typ] = up
	return next, true
}

// CurrentTier returns the tier of an owned upgrade
func (c Customization) CurrentTier(typ UpgradeType) (Tier, bool) {
	up, ok := c.FunctionalUpgrades[typ]
	if !ok {
		return "", false
	}
	return up.CurrentTier, true
}

// UpgradeCode reports the outcome of a tier upgrade attempt. The
// check order is fixed so the first failing condition is
// deterministic: owned, active, max tier, definition, player level,
// prerequisite tier, seeds, Glimmer, ingredients.
type UpgradeCode string

// Upgrade outcomes
const (
	UpgradeOK                      UpgradeCode = "OK"
	UpgradeNotOwned                UpgradeCode = "NOT_OWNED"
	UpgradeNotActivated            UpgradeCode = "NOT_ACTIVATED"
	UpgradeAlreadyMaxTier          UpgradeCode = "ALREADY_MAX_TIER"
	UpgradeMissingTierDefinition   UpgradeCode = "MISSING_TIER_DEFINITION"
	UpgradeLevelTooLow             UpgradeCode = "LEVEL_TOO_LOW"
	UpgradePrerequisiteNotMet      UpgradeCode = "PREREQUISITE_NOT_MET"
	UpgradeInsufficientSeeds       UpgradeCode = "INSUFFICIENT_SEEDS"
	UpgradeInsufficientGlimmer     UpgradeCode = "INSUFFICIENT_GLIMMER"
	UpgradeInsufficientIngredients UpgradeCode = "INSUFFICIENT_INGREDIENTS"
)

// Resources is a read-only view of the player's spendable resources
// used by the upgrade checks.
type Resources struct {
	Seeds       int
	Glimmer     int64
	Ingredients map[string]int
}

// Shortage reports per-resource deficits for an upgrade. All fields
// zero/empty means affordable.
type Shortage struct {
	Seeds       int            `json:"seeds,omitempty"`
	Glimmer     int64          `json:"glimmer,omitempty"`
	Ingredients map[string]int `json:"ingredients,omitempty"`
}

// IsZero reports whether there is no shortage
func (s Shortage) IsZero() bool {
	return s.Seeds == 0 && s.Glimmer == 0 && len(s.Ingredients) == 0
}

// CheckUpgrade validates a tier upgrade without mutating anything.
// def may be nil when the catalog has no entry for the next tier.
func (c Customization) CheckUpgrade(typ UpgradeType, def *TierDef, playerLevel int, res Resources) UpgradeCode {
	up, ok := c.FunctionalUpgrades[typ]
	if !ok {
		return UpgradeNotOwned
	}
	if !up.Active {
		return UpgradeNotActivated
	}
	if _, ok := up.CurrentTier.Next(); !ok {
		return UpgradeAlreadyMaxTier
	}
	if def == nil {
		return UpgradeMissingTierDefinition
	}
	if playerLevel < def.RequiredPlayerLevel {
		return UpgradeLevelTooLow
	}
	if def.PrerequisiteTier != up.CurrentTier {
		return UpgradePrerequisiteNotMet
	}
	if res.Seeds < def.SeedCost {
		return UpgradeInsufficientSeeds
	}
	if res.Glimmer < def.GlimmerCost {
		return UpgradeInsufficientGlimmer
	}
	for _, ingredient := range sortedKeys(def.IngredientCosts) {
		if res.Ingredients[ingredient] < def.IngredientCosts[ingredient] {
			return UpgradeInsufficientIngredients
		}
	}
	return UpgradeOK
}

// ComputeShortage is the read-only affordability projection. It walks
// the exact same resource order as CheckUpgrade.
func ComputeShortage(def TierDef, res Resources) Shortage {
	var s Shortage
	if res.Seeds < def.SeedCost {
		s.Seeds = def.SeedCost - res.Seeds
	}
	if res.Glimmer < def.GlimmerCost {
		s.Glimmer = def.GlimmerCost - res.Glimmer
	}
	for _, ingredient := range sortedKeys(def.IngredientCosts) {
		need := def.IngredientCosts[ingredient]
		if res.Ingredients[ingredient] < need {
			if s.Ingredients == nil {
				s.Ingredients = make(map[string]int)
			}
			s.Ingredients[ingredient] = need - res.Ingredients[ingredient]
		}
	}
	return s
}

// ApplyUpgrade advances the upgrade one tier. Callers run
// CheckUpgrade first and deduct resources in the same critical
// section.
func (c Customization) ApplyUpgrade(typ UpgradeType) (Customization, bool) {
	up, ok := c.FunctionalUpgrades[typ]
	if !ok {
		return c, false
	}
	tier, ok := up.CurrentTier.Next()
	if !ok {
		return c, false
	}
	next := c.Clone()
	up.CurrentTier = tier
	next.FunctionalUpgrades[typ] = up
	return next, true
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
