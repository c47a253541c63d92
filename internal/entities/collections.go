package entities

import (
	"time"
)

// SeedItemID is the inventory item that backs the nest's seed costs
const SeedItemID = "seeds"

// Inventory maps item ids to quantities. Transition helpers return
// new maps; callers never mutate in place.
type Inventory struct {
	Items map[string]int `json:"items"`
}

// NewInventory returns an empty inventory
func NewInventory() Inventory {
	return Inventory{Items: make(map[string]int)}
}

// Clone returns a deep copy
func (inv Inventory) Clone() Inventory {
	next := Inventory{Items: make(map[string]int, len(inv.Items))}
	for id, qty := range inv.Items {
		next.Items[id] = qty
	}
	return next
}

// Quantity returns the held quantity of an item
func (inv Inventory) Quantity(itemID string) int {
	return inv.Items[itemID]
}

// Add credits quantity of an item. Negative deltas go through Remove.
func (inv Inventory) Add(itemID string, qty int) Inventory {
	if qty <= 0 {
		return inv
	}
	next := inv.Clone()
	next.Items[itemID] += qty
	return next
}

// Remove debits quantity of an item, failing (unchanged, false) when
// the held quantity cannot cover it.
func (inv Inventory) Remove(itemID string, qty int) (Inventory, bool) {
	if qty <= 0 || inv.Items[itemID] < qty {
		return inv, false
	}
	next := inv.Clone()
	next.Items[itemID] -= qty
	if next.Items[itemID] == 0 {
		delete(next.Items, itemID)
	}
	return next, true
}

// ShinyCollection records every shiny the quail has hoarded
type ShinyCollection struct {
	Shinies map[string]int `json:"shinies"`
}

// NewShinyCollection returns an empty collection
func NewShinyCollection() ShinyCollection {
	return ShinyCollection{Shinies: make(map[string]int)}
}

// Clone returns a deep copy
func (s ShinyCollection) Clone() ShinyCollection {
	next := ShinyCollection{Shinies: make(map[string]int, len(s.Shinies))}
	for id, n := range s.Shinies {
		next.Shinies[id] = n
	}
	return next
}

// Collect records one more of a shiny
func (s ShinyCollection) Collect(shinyID string) ShinyCollection {
	next := s.Clone()
	next.Shinies[shinyID]++
	return next
}

// Total counts every shiny collected
func (s ShinyCollection) Total() int {
	total := 0
	for _, n := range s.Shinies {
		total += n
	}
	return total
}

// HoardRank is a display tier derived from the shiny total
type HoardRank struct {
	Rank   string `json:"rank"`
	Points int    `json:"points"`
}

// Hoard rank thresholds, lowest first
var hoardRanks = []struct {
	rank string
	min  int
}{
	{"FLEDGLING", 0},
	{"GATHERER", 10},
	{"COLLECTOR", 25},
	{"HOARDER", 50},
	{"MAGNATE", 100},
}

// RankForPoints derives the hoard rank for a shiny total
func RankForPoints(points int) HoardRank {
	rank := hoardRanks[0].rank
	for _, r := range hoardRanks {
		if points >= r.min {
			rank = r.rank
		}
	}
	return HoardRank{Rank: rank, Points: points}
}

// IngredientInventory maps ingredient ids to quantities
type IngredientInventory struct {
	Ingredients map[string]int `json:"ingredients"`
}

// NewIngredientInventory returns an empty ingredient inventory
func NewIngredientInventory() IngredientInventory {
	return IngredientInventory{Ingredients: make(map[string]int)}
}

// Clone returns a deep copy
func (inv IngredientInventory) Clone() IngredientInventory {
	next := IngredientInventory{Ingredients: make(map[string]int, len(inv.Ingredients))}
	for id, qty := range inv.Ingredients {
		next.Ingredients[id] = qty
	}
	return next
}

// Add credits quantity of an ingredient
func (inv IngredientInventory) Add(ingredientID string, qty int) IngredientInventory {
	if qty <= 0 {
		return inv
	}
	next := inv.Clone()
	next.Ingredients[ingredientID] += qty
	return next
}

// RemoveAll debits a batch of ingredients atomically: either every
// cost is covered and deducted, or nothing changes.
func (inv IngredientInventory) RemoveAll(costs map[string]int) (IngredientInventory, bool) {
	for id, qty := range costs {
		if inv.Ingredients[id] < qty {
			return inv, false
		}
	}
	next := inv.Clone()
	for id, qty := range costs {
		next.Ingredients[id] -= qty
		if next.Ingredients[id] == 0 {
			delete(next.Ingredients, id)
		}
	}
	return next, true
}

// RecipeBook is the set of known concoction recipes
type RecipeBook struct {
	Known map[string]bool `json:"known"`
}

// NewRecipeBook returns an empty recipe book
func NewRecipeBook() RecipeBook {
	return RecipeBook{Known: make(map[string]bool)}
}

// Clone returns a deep copy
func (b RecipeBook) Clone() RecipeBook {
	return RecipeBook{Known: cloneSet(b.Known)}
}

// Learn adds a recipe to the book
func (b RecipeBook) Learn(recipeID string) RecipeBook {
	next := b.Clone()
	next.Known[recipeID] = true
	return next
}

// Knows reports whether a recipe is known
func (b RecipeBook) Knows(recipeID string) bool {
	return b.Known[recipeID]
}

// ActiveConcoction is a running consumable effect
type ActiveConcoction struct {
	RecipeID  string    `json:"recipe_id"`
	Effect    string    `json:"effect"`
	Magnitude float64   `json:"magnitude"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ActiveConcoctions tracks running effects
type ActiveConcoctions struct {
	Concoctions []ActiveConcoction `json:"concoctions,omitempty"`
}

// Clone returns a deep copy
func (a ActiveConcoctions) Clone() ActiveConcoctions {
	return ActiveConcoctions{Concoctions: append([]ActiveConcoction(nil), a.Concoctions...)}
}

// Apply adds a running effect
func (a ActiveConcoctions) Apply(c ActiveConcoction) ActiveConcoctions {
	next := a.Clone()
	next.Concoctions = append(next.Concoctions, c)
	return next
}

// Prune drops effects that expired at or before now
func (a ActiveConcoctions) Prune(now time.Time) ActiveConcoctions {
	next := ActiveConcoctions{}
	for _, c := range a.Concoctions {
		if c.ExpiresAt.After(now) {
			next.Concoctions = append(next.Concoctions, c)
		}
	}
	return next
}

// ThoughtProgress is one slotted thought being mulled over
type ThoughtProgress struct {
	ThoughtID string `json:"thought_id"`
	Progress  int    `json:"progress"`
	Target    int    `json:"target"`
	Completed bool   `json:"completed,omitempty"`
}

// ThoughtCabinet holds slotted thoughts and their progress
type ThoughtCabinet struct {
	Slots []ThoughtProgress `json:"slots,omitempty"`
}

// Clone returns a deep copy
func (t ThoughtCabinet) Clone() ThoughtCabinet {
	return ThoughtCabinet{Slots: append([]ThoughtProgress(nil), t.Slots...)}
}

// Advance adds progress to a slotted thought, marking it complete at
// its target. Progress never exceeds the target.
func (t ThoughtCabinet) Advance(thoughtID string, delta int) ThoughtCabinet {
	next := t.Clone()
	for i := range next.Slots {
		if next.Slots[i].ThoughtID != thoughtID || next.Slots[i].Completed {
			continue
		}
		next.Slots[i].Progress += delta
		if next.Slots[i].Progress >= next.Slots[i].Target {
			next.Slots[i].Progress = next.Slots[i].Target
			next.Slots[i].Completed = true
		}
		if next.Slots[i].Progress < 0 {
			next.Slots[i].Progress = 0
		}
	}
	return next
}

// Slot adds a thought to the cabinet
func (t ThoughtCabinet) Slot(thoughtID string, target int) ThoughtCabinet {
	next := t.Clone()
	next.Slots = append(next.Slots, ThoughtProgress{ThoughtID: thoughtID, Target: target})
	return next
}

// ChoiceEntry is one append-only audit tag
type ChoiceEntry struct {
	Tag       string            `json:"tag"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ChoiceLog is the append-only audit/analytics log. Managers append a
// tag on every successful mutation; fraud review reads it as a
// secondary source.
type ChoiceLog struct {
	Entries []ChoiceEntry `json:"entries,omitempty"`
}

// Clone returns a deep copy
func (l ChoiceLog) Clone() ChoiceLog {
	return ChoiceLog{Entries: append([]ChoiceEntry(nil), l.Entries...)}
}

// Append adds an audit tag
func (l ChoiceLog) Append(tag string, ts time.Time, metadata map[string]string) ChoiceLog {
	next := l.Clone()
	next.Entries = append(next.Entries, ChoiceEntry{Tag: tag, Timestamp: ts, Metadata: metadata})
	return next
}

// WorldExploration is the cumulative discovery state
type WorldExploration struct {
	DiscoveredRegions   map[string]bool `json:"discovered_regions"`
	DiscoveredLocations map[string]bool `json:"discovered_locations"`
	DiscoveredBiomes    map[string]bool `json:"discovered_biomes"`
	FastTravelUnlocks   map[string]bool `json:"fast_travel_unlocks"`
	Achievements        map[string]bool `json:"achievements"`
	CurrentLocationID   string          `json:"current_location_id,omitempty"`
}

// NewWorldExploration returns empty exploration state
func NewWorldExploration() WorldExploration {
	return WorldExploration{
		DiscoveredRegions:   make(map[string]bool),
		DiscoveredLocations: make(map[string]bool),
		DiscoveredBiomes:    make(map[string]bool),
		FastTravelUnlocks:   make(map[string]bool),
		Achievements:        make(map[string]bool),
	}
}

// Clone returns a deep copy
func (w WorldExploration) Clone() WorldExploration {
	next := WorldExploration{
		DiscoveredRegions:   cloneSet(w.DiscoveredRegions),
		DiscoveredLocations: cloneSet(w.DiscoveredLocations),
		DiscoveredBiomes:    cloneSet(w.DiscoveredBiomes),
		FastTravelUnlocks:   cloneSet(w.FastTravelUnlocks),
		Achievements:        cloneSet(w.Achievements),
		CurrentLocationID:   w.CurrentLocationID,
	}
	return next
}

// HasAchievement reports whether an achievement was already granted
func (w WorldExploration) HasAchievement(id string) bool {
	return w.Achievements[id]
}

// cloneSet copies stored values as-is so an explicit false entry in a
// loaded save survives the round trip.
func cloneSet(set map[string]bool) map[string]bool {
	next := make(map[string]bool, len(set))
	for id, v := range set {
		next[id] = v
	}
	return next
}
