// Package entities defines the player and account aggregates.
//
// Player is the unit of save/load: the whole aggregate serializes as
// one JSON document with stable snake_case wire keys, and every
// mutation goes through whole-object copy-on-write so the managers
// can publish snapshots atomically.
package entities

import (
	"time"

	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/nest"
	"github.com/quailworks/quail-api/internal/progression"
	"github.com/quailworks/quail-api/internal/quest"
)

// Player is the root aggregate for one character slot. Wire keys are
// load-bearing: existing save files use exactly these names.
type Player struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Wallet              ledger.Wallet                 `json:"wallet"`
	Inventory           Inventory                     `json:"inventory"`
	ShinyCollection     ShinyCollection               `json:"shiny_collection"`
	HoardRank           HoardRank                     `json:"hoard_rank"`
	IngredientInventory IngredientInventory           `json:"ingredient_inventory"`
	RecipeBook          RecipeBook                    `json:"recipe_book"`
	ActiveConcoctions   ActiveConcoctions             `json:"active_concoctions"`
	ThoughtCabinet      ThoughtCabinet                `json:"thought_cabinet"`
	ArchetypeProgress   progression.ArchetypeProgress `json:"archetype_progress"`
	SkillTree           progression.SkillTree         `json:"skill_tree"`
	QuestLog            quest.Log                     `json:"quest_log"`
	NestCustomization   nest.Customization            `json:"nest_customization"`
	WorldExploration    WorldExploration              `json:"world_exploration"`
	ChoiceLog           ChoiceLog                     `json:"choice_log"`
}

// NewPlayer constructs the aggregate for a freshly created character
// slot.
func NewPlayer(id, accountID string, createdAt time.Time) *Player {
	return &Player{
		ID:                  id,
		AccountID:           accountID,
		CreatedAt:           createdAt,
		UpdatedAt:           createdAt,
		Wallet:              ledger.NewWallet(),
		Inventory:           NewInventory(),
		ShinyCollection:     NewShinyCollection(),
		HoardRank:           RankForPoints(0),
		IngredientInventory: NewIngredientInventory(),
		RecipeBook:          NewRecipeBook(),
		ArchetypeProgress:   progression.NewArchetypeProgress(),
		SkillTree:           progression.NewSkillTree(),
		QuestLog:            quest.NewLog(),
		NestCustomization:   nest.NewCustomization(),
		WorldExploration:    NewWorldExploration(),
	}
}

// Clone deep-copies the aggregate. Managers clone, transition the
// copy, then persist and publish it.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	next := *p
	next.Inventory = p.Inventory.Clone()
	next.ShinyCollection = p.ShinyCollection.Clone()
	next.IngredientInventory = p.IngredientInventory.Clone()
	next.RecipeBook = p.RecipeBook.Clone()
	next.ActiveConcoctions = p.ActiveConcoctions.Clone()
	next.ThoughtCabinet = p.ThoughtCabinet.Clone()
	next.ArchetypeProgress = p.ArchetypeProgress.Clone()
	next.SkillTree = p.SkillTree.Clone()
	next.QuestLog = p.QuestLog.Clone()
	next.NestCustomization = p.NestCustomization.Clone()
	next.WorldExploration = p.WorldExploration.Clone()
	next.ChoiceLog = p.ChoiceLog.Clone()
	// Wallet transitions already copy; the stored value is immutable
	return &next
}

// NestResources projects the player's spendable resources in the form
// the nest upgrade checks consume.
func (p *Player) NestResources() nest.Resources {
	return nest.Resources{
		Seeds:       p.Inventory.Quantity(SeedItemID),
		Glimmer:     p.Wallet.Balance,
		Ingredients: p.IngredientInventory.Ingredients,
	}
}

// DisplayStats is the denormalized snapshot shown on the character
// select screen without loading the full aggregate.
type DisplayStats struct {
	Level        int    `json:"level"`
	Archetype    string `json:"archetype,omitempty"`
	ShinyCount   int    `json:"shiny_count"`
	HoardRank    string `json:"hoard_rank"`
	QuestsDone   int    `json:"quests_done"`
	RegionsFound int    `json:"regions_found"`
}

// Snapshot derives display stats from the live aggregate
func (p *Player) Snapshot() DisplayStats {
	return DisplayStats{
		Level:        p.ArchetypeProgress.Level,
		Archetype:    string(p.ArchetypeProgress.SelectedArchetype),
		ShinyCount:   p.ShinyCollection.Total(),
		HoardRank:    p.HoardRank.Rank,
		QuestsDone:   len(p.QuestLog.Completed),
		RegionsFound: len(p.WorldExploration.DiscoveredRegions),
	}
}
