package nest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quailworks/quail-api/internal/nest"
)

func tier2Def() *nest.TierDef {
	return &nest.TierDef{
		UpgradeType:         nest.UpgradeSeedStorage,
		Tier:                nest.Tier2,
		RequiredPlayerLevel: 3,
		PrerequisiteTier:    nest.Tier1,
		SeedCost:            100,
		GlimmerCost:         50,
		IngredientCosts:     map[string]int{"twigs": 5, "moss": 2},
		BonusMagnitude:      1.0,
	}
}

func richResources() nest.Resources {
	return nest.Resources{
		Seeds:       1000,
		Glimmer:     1000,
		Ingredients: map[string]int{"twigs": 50, "moss": 50},
	}
}

func ownedActiveNest() nest.Customization {
	c := nest.NewCustomization().GrantUpgrade(nest.UpgradeSeedStorage)
	c, ok := c.SetUpgradeActive(nest.UpgradeSeedStorage, true)
	if !ok {
		panic("upgrade not owned")
	}
	return c
}

func TestTier_Next(t *testing.T) {
	tier, ok := nest.Tier1.Next()
	require.True(t, ok)
	assert.Equal(t, nest.Tier2, tier)

	tier, ok = nest.Tier2.Next()
	require.True(t, ok)
	assert.Equal(t, nest.Tier3, tier)

	_, ok = nest.Tier3.Next()
	assert.False(t, ok)
}

func TestCheckUpgrade_Order(t *testing.T) {
	def := tier2Def()
	res := richResources()

	t.Run("not owned", func(t *testing.T) {
		c := nest.NewCustomization()
		assert.Equal(t, nest.UpgradeNotOwned, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 10, res))
	})

	t.Run("not activated", func(t *testing.T) {
		c := nest.NewCustomization().GrantUpgrade(nest.UpgradeSeedStorage)
		assert.Equal(t, nest.UpgradeNotActivated, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 10, res))
	})

	t.Run("missing definition", func(t *testing.T) {
		c := ownedActiveNest()
		assert.Equal(t, nest.UpgradeMissingTierDefinition, c.CheckUpgrade(nest.UpgradeSeedStorage, nil, 10, res))
	})

	t.Run("level too low", func(t *testing.T) {
		c := ownedActiveNest()
		assert.Equal(t, nest.UpgradeLevelTooLow, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 2, res))
	})

	t.Run("wrong prerequisite tier", func(t *testing.T) {
		c := ownedActiveNest()
		wrongDef := *def
		wrongDef.PrerequisiteTier = nest.Tier2
		assert.Equal(t, nest.UpgradePrerequisiteNotMet, c.CheckUpgrade(nest.UpgradeSeedStorage, &wrongDef, 10, res))
	})

	t.Run("seeds checked before glimmer and ingredients", func(t *testing.T) {
		c := ownedActiveNest()
		broke := nest.Resources{Seeds: 0, Glimmer: 0, Ingredients: nil}
		assert.Equal(t, nest.UpgradeInsufficientSeeds, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 10, broke))
	})

	t.Run("glimmer checked before ingredients", func(t *testing.T) {
		c := ownedActiveNest()
		noGlimmer := nest.Resources{Seeds: 100, Glimmer: 0, Ingredients: nil}
		assert.Equal(t, nest.UpgradeInsufficientGlimmer, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 10, noGlimmer))
	})

	t.Run("ingredients last", func(t *testing.T) {
		c := ownedActiveNest()
		noMoss := nest.Resources{Seeds: 100, Glimmer: 50, Ingredients: map[string]int{"twigs": 5}}
		assert.Equal(t, nest.UpgradeInsufficientIngredients, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 10, noMoss))
	})

	t.Run("all checks pass", func(t *testing.T) {
		c := ownedActiveNest()
		assert.Equal(t, nest.UpgradeOK, c.CheckUpgrade(nest.UpgradeSeedStorage, def, 10, res))
	})
}

func TestCheckUpgrade_MaxTier(t *testing.T) {
	c := ownedActiveNest()
	c, ok := c.ApplyUpgrade(nest.UpgradeSeedStorage)
	require.True(t, ok)
	c, ok = c.ApplyUpgrade(nest.UpgradeSeedStorage)
	require.True(t, ok)

	tier, _ := c.CurrentTier(nest.UpgradeSeedStorage)
	require.Equal(t, nest.Tier3, tier)

	assert.Equal(t, nest.UpgradeAlreadyMaxTier, c.CheckUpgrade(nest.UpgradeSeedStorage, tier2Def(), 10, richResources()))

	_, ok = c.ApplyUpgrade(nest.UpgradeSeedStorage)
	assert.False(t, ok)
}

func TestComputeShortage(t *testing.T) {
	def := *tier2Def()

	s := nest.ComputeShortage(def, richResources())
	assert.True(t, s.IsZero())

	s = nest.ComputeShortage(def, nest.Resources{
		Seeds:       40,
		Glimmer:     20,
		Ingredients: map[string]int{"twigs": 1},
	})
	assert.Equal(t, 60, s.Seeds)
	assert.Equal(t, int64(30), s.Glimmer)
	assert.Equal(t, map[string]int{"twigs": 4, "moss": 2}, s.Ingredients)
}

func TestPlaceCosmetic(t *testing.T) {
	c := nest.NewCustomization()

	_, code := c.PlaceCosmetic("i1", "pebble", 5, 5)
	assert.Equal(t, nest.PlaceNotOwned, code)

	c = c.AddCosmetic("pebble")

	_, code = c.PlaceCosmetic("i1", "pebble", 11, 5)
	assert.Equal(t, nest.PlaceOutOfBounds, code)
	_, code = c.PlaceCosmetic("i1", "pebble", 5, -0.5)
	assert.Equal(t, nest.PlaceOutOfBounds, code)

	for i := 0; i < nest.MaxPlacedPerType; i++ {
		var codeN nest.PlaceCode
		c, codeN = c.PlaceCosmetic(string(rune('a'+i)), "pebble", 1, 1)
		require.Equal(t, nest.PlaceOK, codeN)
	}

	_, code = c.PlaceCosmetic("overflow", "pebble", 1, 1)
	assert.Equal(t, nest.PlaceTooManyInstances, code)

	c, ok := c.RemoveCosmetic("a")
	require.True(t, ok)
	assert.Len(t, c.PlacedCosmetics, nest.MaxPlacedPerType-1)

	_, ok = c.RemoveCosmetic("missing")
	assert.False(t, ok)
}

func TestCustomization_ClonePreservesExplicitFalse(t *testing.T) {
	c := nest.NewCustomization()
	c = c.AddCosmetic("pebble")
	// A loaded save may carry a revoked cosmetic as explicit false.
	c.OwnedCosmetics["feather"] = false

	clone := c.Clone()
	v, ok := clone.OwnedCosmetics["feather"]
	require.True(t, ok)
	assert.False(t, v)
	assert.True(t, clone.OwnedCosmetics["pebble"])
}
