package entities_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/nest"
	"github.com/quailworks/quail-api/internal/progression"
	"github.com/quailworks/quail-api/internal/quest"
)

func buildPlayer(t *testing.T) *entities.Player {
	t.Helper()
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	p := entities.NewPlayer("slot_1", "acct_1", created)

	var err error
	p.Wallet, err = p.Wallet.Add(500, ledger.TransactionIAPPurchase, created, "tx_1", &ledger.TxDetails{ReceiptData: "r1"})
	require.NoError(t, err)

	p.Inventory = p.Inventory.Add(entities.SeedItemID, 120)
	p.ShinyCollection = p.ShinyCollection.Collect("bottlecap")
	p.HoardRank = entities.RankForPoints(p.ShinyCollection.Total())
	p.IngredientInventory = p.IngredientInventory.Add("twigs", 7)
	p.RecipeBook = p.RecipeBook.Learn("calm_tonic")
	p.ActiveConcoctions = p.ActiveConcoctions.Apply(entities.ActiveConcoction{
		RecipeID: "calm_tonic", Effect: "CALM", Magnitude: 0.2, ExpiresAt: created.Add(time.Hour),
	})
	p.ThoughtCabinet = p.ThoughtCabinet.Slot("why_shiny", 10)

	tree := progression.NewTalentTree("FORAGER", map[string]progression.Talent{
		"keen_eye": {ID: "keen_eye", Type: progression.TalentForaging, Magnitude: 0.1, CostInPoints: 1},
	})
	p.ArchetypeProgress, err = p.ArchetypeProgress.SelectArchetype(progression.ArchetypeForager, tree)
	require.NoError(t, err)
	p.ArchetypeProgress, _, err = p.ArchetypeProgress.GainXP(600)
	require.NoError(t, err)

	p.SkillTree, _, err = p.SkillTree.GainSkillXP("foraging", 150)
	require.NoError(t, err)

	q := quest.Quest{ID: "gather", Objectives: []quest.Objective{{ID: "seeds", TargetQuantity: 5}}}
	p.QuestLog, _ = p.QuestLog.Accept(q, created)

	p.NestCustomization = p.NestCustomization.GrantUpgrade(nest.UpgradeSeedStorage)
	p.WorldExploration.DiscoveredRegions["meadow"] = true
	p.ChoiceLog = p.ChoiceLog.Append("iap:purchase", created, map[string]string{"product": "glimmer_500"})

	return p
}

func TestPlayer_JSONRoundTrip(t *testing.T) {
	p := buildPlayer(t)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var restored entities.Player
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, p.Wallet.Balance, restored.Wallet.Balance)
	assert.Equal(t, p.ArchetypeProgress.Level, restored.ArchetypeProgress.Level)
	assert.Len(t, restored.QuestLog.Active, 1)
	assert.True(t, restored.RecipeBook.Knows("calm_tonic"))
	assert.Equal(t, p.ChoiceLog.Entries[0].Tag, restored.ChoiceLog.Entries[0].Tag)

	// lossless round trip
	again, err := json.Marshal(&restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestPlayer_WireKeys(t *testing.T) {
	p := buildPlayer(t)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	// save-file compatibility: these exact keys are the wire contract
	for _, key := range []string{
		"wallet", "inventory", "shiny_collection", "hoard_rank",
		"ingredient_inventory", "recipe_book", "active_concoctions",
		"thought_cabinet", "archetype_progress", "skill_tree",
		"quest_log", "nest_customization", "world_exploration", "choice_log",
	} {
		assert.Contains(t, doc, key)
	}
}

func TestPlayer_CloneIsolation(t *testing.T) {
	p := buildPlayer(t)
	clone := p.Clone()

	clone.Inventory = clone.Inventory.Add(entities.SeedItemID, 50)
	clone.WorldExploration.DiscoveredRegions["cliffs"] = true
	clone.QuestLog, _ = clone.QuestLog.Abandon("gather")

	assert.Equal(t, 120, p.Inventory.Quantity(entities.SeedItemID))
	assert.False(t, p.WorldExploration.DiscoveredRegions["cliffs"])
	assert.Contains(t, p.QuestLog.Active, "gather")
}

func TestPlayer_ClonePreservesExplicitFalseSetEntries(t *testing.T) {
	p := buildPlayer(t)
	// A loaded save may carry explicit false entries.
	p.WorldExploration.Achievements["revoked_badge"] = false
	p.RecipeBook.Known["forgotten_recipe"] = false

	clone := p.Clone()
	v, ok := clone.WorldExploration.Achievements["revoked_badge"]
	require.True(t, ok)
	assert.False(t, v)
	v, ok = clone.RecipeBook.Known["forgotten_recipe"]
	require.True(t, ok)
	assert.False(t, v)
}

func TestPlayer_NestResources(t *testing.T) {
	p := buildPlayer(t)
	res := p.NestResources()

	assert.Equal(t, 120, res.Seeds)
	assert.Equal(t, int64(500), res.Glimmer)
	assert.Equal(t, 7, res.Ingredients["twigs"])
}

func TestPlayer_Snapshot(t *testing.T) {
	p := buildPlayer(t)
	stats := p.Snapshot()

	assert.Equal(t, 3, stats.Level)
	assert.Equal(t, "FORAGER", stats.Archetype)
	assert.Equal(t, 1, stats.ShinyCount)
	assert.Equal(t, "FLEDGLING", stats.HoardRank)
	assert.Equal(t, 1, stats.RegionsFound)
}

func TestRankForPoints(t *testing.T) {
	assert.Equal(t, "FLEDGLING", entities.RankForPoints(0).Rank)
	assert.Equal(t, "FLEDGLING", entities.RankForPoints(9).Rank)
	assert.Equal(t, "GATHERER", entities.RankForPoints(10).Rank)
	assert.Equal(t, "COLLECTOR", entities.RankForPoints(30).Rank)
	assert.Equal(t, "HOARDER", entities.RankForPoints(60).Rank)
	assert.Equal(t, "MAGNATE", entities.RankForPoints(150).Rank)
}
