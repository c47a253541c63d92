package main

import (
	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/nest"
	"github.com/quailworks/quail-api/internal/progression"
)

// builtinContent returns the starter content shipped with the server.
// Live deployments replace these with catalogs loaded from the content
// pipeline; the shapes are identical.
func builtinContent() (*catalogs.StaticLocations, catalogs.TalentCatalog, catalogs.NestUpgradeCatalog, catalogs.ProductCatalog) {
	locations := catalogs.NewStaticLocations(
		[]catalogs.Location{
			{ID: "meadow_pond", RegionID: "sunlit_meadow", BiomeID: "meadow", Difficulty: 1, FastTravel: true},
			{ID: "meadow_burrow", RegionID: "sunlit_meadow", BiomeID: "meadow", Difficulty: 1},
			{ID: "bramble_edge", RegionID: "sunlit_meadow", BiomeID: "meadow", Difficulty: 2},
			{ID: "fern_hollow", RegionID: "whispering_wood", BiomeID: "forest", Difficulty: 2},
			{ID: "owl_ridge", RegionID: "whispering_wood", BiomeID: "forest", Difficulty: 3, FastTravel: true},
			{ID: "moss_grotto", RegionID: "whispering_wood", BiomeID: "forest", Difficulty: 3, Hidden: true},
			{ID: "dune_crest", RegionID: "amber_dunes", BiomeID: "desert", Difficulty: 4},
			{ID: "mirage_spring", RegionID: "amber_dunes", BiomeID: "desert", Difficulty: 5, Hidden: true, FastTravel: true},
		},
		[]catalogs.Region{
			{ID: "sunlit_meadow", Difficulty: 1},
			{ID: "whispering_wood", Difficulty: 2},
			{ID: "amber_dunes", Difficulty: 4, Hidden: true},
		},
		map[string][]string{
			"meadow_pond":   {"meadow_burrow", "bramble_edge"},
			"meadow_burrow": {"meadow_pond"},
			"bramble_edge":  {"meadow_pond", "fern_hollow"},
			"fern_hollow":   {"bramble_edge", "owl_ridge"},
			"owl_ridge":     {"fern_hollow", "moss_grotto", "dune_crest"},
			"moss_grotto":   {"owl_ridge"},
			"dune_crest":    {"owl_ridge", "mirage_spring"},
			"mirage_spring": {"dune_crest"},
		},
	)

	talents := &catalogs.StaticTalents{
		Trees: map[progression.Archetype]map[string]progression.Talent{
			progression.ArchetypeForager: {
				"keen_eye": {
					ID: "keen_eye", Name: "Keen Eye", Type: progression.TalentForaging,
					Magnitude: 0.10, CostInPoints: 1,
				},
				"seed_sense": {
					ID: "seed_sense", Name: "Seed Sense", Type: progression.TalentForaging,
					Magnitude: 0.25, CostInPoints: 2,
					Requirements: []progression.TalentRequirement{
						{Kind: progression.TalentReqPrerequisiteTalent, TalentID: "keen_eye"},
						{Kind: progression.TalentReqLevel, Level: 3},
					},
				},
				"deep_pockets": {
					ID: "deep_pockets", Name: "Deep Pockets", Type: progression.TalentHoarding,
					Magnitude: 0.15, CostInPoints: 2,
					Requirements: []progression.TalentRequirement{
						{Kind: progression.TalentReqLevel, Level: 5},
					},
				},
			},
			progression.ArchetypeSentinel: {
				"sharp_ears": {
					ID: "sharp_ears", Name: "Sharp Ears", Type: progression.TalentVitality,
					Magnitude: 0.10, CostInPoints: 1,
				},
				"night_watch": {
					ID: "night_watch", Name: "Night Watch", Type: progression.TalentStealth,
					Magnitude: 0.20, CostInPoints: 2,
					Requirements: []progression.TalentRequirement{
						{Kind: progression.TalentReqPrerequisiteTalent, TalentID: "sharp_ears"},
					},
				},
			},
			progression.ArchetypeTrickster: {
				"silver_tongue": {
					ID: "silver_tongue", Name: "Silver Tongue", Type: progression.TalentCharisma,
					Magnitude: 0.15, CostInPoints: 1,
				},
			},
			progression.ArchetypeAlchemist: {
				"steady_claws": {
					ID: "steady_claws", Name: "Steady Claws", Type: progression.TalentCrafting,
					Magnitude: 0.15, CostInPoints: 1,
				},
			},
		},
	}

	upgrades := &catalogs.StaticNestUpgrades{
		Defs: map[nest.UpgradeType]map[nest.Tier]nest.TierDef{
			nest.UpgradeSeedStorage: {
				nest.Tier1: {
					UpgradeType: nest.UpgradeSeedStorage, Tier: nest.Tier1,
					RequiredPlayerLevel: 1, SeedCost: 50, GlimmerCost: 0,
					BonusMagnitude: 0.10,
				},
				nest.Tier2: {
					UpgradeType: nest.UpgradeSeedStorage, Tier: nest.Tier2,
					PrerequisiteTier: nest.Tier1, RequiredPlayerLevel: 5,
					SeedCost: 150, GlimmerCost: 200,
					IngredientCosts: map[string]int{"moss": 5},
					BonusMagnitude:  0.25,
				},
				nest.Tier3: {
					UpgradeType: nest.UpgradeSeedStorage, Tier: nest.Tier3,
					PrerequisiteTier: nest.Tier2, RequiredPlayerLevel: 12,
					SeedCost: 400, GlimmerCost: 750,
					IngredientCosts: map[string]int{"moss": 10, "twigs": 20},
					BonusMagnitude:  0.50,
				},
			},
			nest.UpgradeLookout: {
				nest.Tier1: {
					UpgradeType: nest.UpgradeLookout, Tier: nest.Tier1,
					RequiredPlayerLevel: 3, SeedCost: 75, GlimmerCost: 100,
					BonusMagnitude: 0.05,
				},
				nest.Tier2: {
					UpgradeType: nest.UpgradeLookout, Tier: nest.Tier2,
					PrerequisiteTier: nest.Tier1, RequiredPlayerLevel: 8,
					SeedCost: 200, GlimmerCost: 400,
					IngredientCosts: map[string]int{"twigs": 12},
					BonusMagnitude:  0.15,
				},
			},
		},
	}

	products := &catalogs.StaticProducts{
		ByID: map[string]catalogs.Product{
			"glimmer_pouch_small": {ID: "glimmer_pouch_small", GlimmerAmount: 500, Consumable: true},
			"glimmer_pouch_large": {ID: "glimmer_pouch_large", GlimmerAmount: 3000, Consumable: true},
			"promo_launch_pack":   {ID: "promo_launch_pack", GlimmerAmount: 250, Consumable: true},
			"extra_character_slot": {
				ID: "extra_character_slot", EntitlementID: "extra_character_slot",
			},
		},
	}

	return locations, talents, upgrades, products
}
