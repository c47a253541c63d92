package entities

import (
	"time"
)

// BaseSlots is the free character slot count before purchased extras
const BaseSlots = 3

// CharacterSlot is one save slot in an account. Deleted slots stay in
// the list with IsDeleted set; their capacity remains reserved.
type CharacterSlot struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Archetype            string       `json:"archetype"`
	CreatedAt            time.Time    `json:"created_at"`
	LastPlayedAt         time.Time    `json:"last_played_at"`
	TotalPlaytimeSeconds int64        `json:"total_playtime_seconds"`
	IsDeleted            bool         `json:"is_deleted,omitempty"`
	DisplayStats         DisplayStats `json:"display_stats"`
}

// CharacterAccount owns the slot list and entitlements for one
// account.
type CharacterAccount struct {
	ID                  string          `json:"id"`
	CharacterSlots      []CharacterSlot `json:"character_slots"`
	PurchasedExtraSlots int             `json:"purchased_extra_slots"`
	CurrentSlotID       string          `json:"current_slot_id,omitempty"`
	Entitlements        map[string]bool `json:"entitlements"`
}

// NewCharacterAccount returns an empty account
func NewCharacterAccount(id string) *CharacterAccount {
	return &CharacterAccount{
		ID:           id,
		Entitlements: make(map[string]bool),
	}
}

// Clone returns a deep copy
func (a *CharacterAccount) Clone() *CharacterAccount {
	if a == nil {
		return nil
	}
	next := *a
	next.CharacterSlots = append([]CharacterSlot(nil), a.CharacterSlots...)
	next.Entitlements = make(map[string]bool, len(a.Entitlements))
	for id, v := range a.Entitlements {
		next.Entitlements[id] = v
	}
	return &next
}

// MaxSlots is the slot capacity including purchased extras
func (a *CharacterAccount) MaxSlots() int {
	return BaseSlots + a.PurchasedExtraSlots
}

// CanCreateSlot reports whether a new slot fits. Soft-deleted slots
// still count toward capacity: deletion reserves the space.
func (a *CharacterAccount) CanCreateSlot() bool {
	return len(a.CharacterSlots) < a.MaxSlots()
}

// Slot finds a slot by id
func (a *CharacterAccount) Slot(id string) (CharacterSlot, bool) {
	for _, slot := range a.CharacterSlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return CharacterSlot{}, false
}

// ActiveSlots returns non-deleted slots ordered by LastPlayedAt
// descending.
func (a *CharacterAccount) ActiveSlots() []CharacterSlot {
	active := make([]CharacterSlot, 0, len(a.CharacterSlots))
	for _, slot := range a.CharacterSlots {
		if !slot.IsDeleted {
			active = append(active, slot)
		}
	}
	for i := 1; i < len(active); i++ {
		for j := i; j > 0 && active[j].LastPlayedAt.After(active[j-1].LastPlayedAt); j-- {
			active[j], active[j-1] = active[j-1], active[j]
		}
	}
	return active
}

// AddSlot appends a new slot and makes it current. Fails (unchanged,
// false) at capacity.
func (a *CharacterAccount) AddSlot(slot CharacterSlot) (*CharacterAccount, bool) {
	if !a.CanCreateSlot() {
		return a, false
	}
	next := a.Clone()
	next.CharacterSlots = append(next.CharacterSlots, slot)
	next.CurrentSlotID = slot.ID
	return next, true
}

// SoftDeleteSlot marks a slot deleted. When the deleted slot was
// current, the most-recently-played remaining active slot becomes
// current; with none left the current slot is unset.
func (a *CharacterAccount) SoftDeleteSlot(id string) (*CharacterAccount, bool) {
	idx := a.slotIndex(id)
	if idx < 0 || a.CharacterSlots[idx].IsDeleted {
		return a, false
	}
	next := a.Clone()
	next.CharacterSlots[idx].IsDeleted = true
	if next.CurrentSlotID == id {
		next.CurrentSlotID = ""
		if active := next.ActiveSlots(); len(active) > 0 {
			next.CurrentSlotID = active[0].ID
		}
	}
	return next, true
}

// RestoreSlot flips a deleted slot back to active
func (a *CharacterAccount) RestoreSlot(id string) (*CharacterAccount, bool) {
	idx := a.slotIndex(id)
	if idx < 0 || !a.CharacterSlots[idx].IsDeleted {
		return a, false
	}
	next := a.Clone()
	next.CharacterSlots[idx].IsDeleted = false
	return next, true
}

// SwitchSlot makes an active slot current and stamps its
// LastPlayedAt.
func (a *CharacterAccount) SwitchSlot(id string, at time.Time) (*CharacterAccount, bool) {
	idx := a.slotIndex(id)
	if idx < 0 || a.CharacterSlots[idx].IsDeleted {
		return a, false
	}
	next := a.Clone()
	next.CharacterSlots[idx].LastPlayedAt = at
	next.CurrentSlotID = id
	return next, true
}

// UpdateSlotMetadata accumulates playtime and overwrites the
// denormalized display stats. Deleted slots are rejected.
func (a *CharacterAccount) UpdateSlotMetadata(id string, stats DisplayStats, additionalPlaytimeSeconds int64) (*CharacterAccount, bool) {
	idx := a.slotIndex(id)
	if idx < 0 || a.CharacterSlots[idx].IsDeleted {
		return a, false
	}
	next := a.Clone()
	next.CharacterSlots[idx].TotalPlaytimeSeconds += additionalPlaytimeSeconds
	next.CharacterSlots[idx].DisplayStats = stats
	return next, true
}

// GrantEntitlement idempotently adds a slot entitlement. A newly
// granted entitlement also raises the slot capacity by one.
func (a *CharacterAccount) GrantEntitlement(id string) (*CharacterAccount, bool) {
	if a.Entitlements[id] {
		return a, false
	}
	next := a.Clone()
	next.Entitlements[id] = true
	next.PurchasedExtraSlots++
	return next, true
}

// AddExtraSlots raises capacity by n purchased slots
func (a *CharacterAccount) AddExtraSlots(n int) *CharacterAccount {
	next := a.Clone()
	next.PurchasedExtraSlots += n
	return next
}

func (a *CharacterAccount) slotIndex(id string) int {
	for i := range a.CharacterSlots {
		if a.CharacterSlots[i].ID == id {
			return i
		}
	}
	return -1
}
