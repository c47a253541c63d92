package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quailworks/quail-api/internal/entities"
)

var slotTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func slot(id string, lastPlayed time.Time) entities.CharacterSlot {
	return entities.CharacterSlot{
		ID:           id,
		Name:         "Quail " + id,
		Archetype:    "FORAGER",
		CreatedAt:    slotTime,
		LastPlayedAt: lastPlayed,
	}
}

func TestAccount_CapacityCountsDeletedSlots(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	require.Equal(t, entities.BaseSlots, a.MaxSlots())

	a, ok := a.AddSlot(slot("s1", slotTime))
	require.True(t, ok)
	a, ok = a.AddSlot(slot("s2", slotTime))
	require.True(t, ok)

	// 2 active + 1 deleted still leaves room for the third
	a, ok = a.AddSlot(slot("s3", slotTime))
	require.True(t, ok)
	a, ok = a.SoftDeleteSlot("s3")
	require.True(t, ok)
	assert.False(t, a.CanCreateSlot(), "deleted slot still occupies capacity")

	_, ok = a.AddSlot(slot("s4", slotTime))
	assert.False(t, ok)
}

func TestAccount_SoftDeleteSwitchesCurrent(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	a, _ = a.AddSlot(slot("s1", slotTime.Add(1*time.Hour)))
	a, _ = a.AddSlot(slot("s2", slotTime.Add(3*time.Hour)))
	a, _ = a.AddSlot(slot("s3", slotTime.Add(2*time.Hour)))
	require.Equal(t, "s3", a.CurrentSlotID)

	a, ok := a.SoftDeleteSlot("s3")
	require.True(t, ok)
	// failover to most recently played remaining active slot
	assert.Equal(t, "s2", a.CurrentSlotID)

	a, _ = a.SoftDeleteSlot("s2")
	a, _ = a.SoftDeleteSlot("s1")
	assert.Empty(t, a.CurrentSlotID)

	// double delete rejected
	_, ok = a.SoftDeleteSlot("s1")
	assert.False(t, ok)
}

func TestAccount_RestoreSlot(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	a, _ = a.AddSlot(slot("s1", slotTime))

	_, ok := a.RestoreSlot("s1")
	assert.False(t, ok, "restoring an active slot fails")
	_, ok = a.RestoreSlot("missing")
	assert.False(t, ok)

	a, _ = a.SoftDeleteSlot("s1")
	a, ok = a.RestoreSlot("s1")
	require.True(t, ok)

	got, found := a.Slot("s1")
	require.True(t, found)
	assert.False(t, got.IsDeleted)
}

func TestAccount_ActiveSlotsOrdering(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	a, _ = a.AddSlot(slot("old", slotTime.Add(1*time.Hour)))
	a, _ = a.AddSlot(slot("newest", slotTime.Add(5*time.Hour)))
	a, _ = a.AddSlot(slot("mid", slotTime.Add(3*time.Hour)))
	a, _ = a.SoftDeleteSlot("mid")

	active := a.ActiveSlots()
	require.Len(t, active, 2)
	assert.Equal(t, "newest", active[0].ID)
	assert.Equal(t, "old", active[1].ID)
}

func TestAccount_SwitchSlot(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	a, _ = a.AddSlot(slot("s1", slotTime))
	a, _ = a.AddSlot(slot("s2", slotTime))

	later := slotTime.Add(10 * time.Hour)
	a, ok := a.SwitchSlot("s1", later)
	require.True(t, ok)
	assert.Equal(t, "s1", a.CurrentSlotID)

	got, _ := a.Slot("s1")
	assert.Equal(t, later, got.LastPlayedAt)

	a, _ = a.SoftDeleteSlot("s2")
	_, ok = a.SwitchSlot("s2", later)
	assert.False(t, ok, "cannot switch to a deleted slot")
}

func TestAccount_UpdateSlotMetadata(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	a, _ = a.AddSlot(slot("s1", slotTime))

	stats := entities.DisplayStats{Level: 4, Archetype: "FORAGER", ShinyCount: 12, HoardRank: "GATHERER"}
	a, ok := a.UpdateSlotMetadata("s1", stats, 600)
	require.True(t, ok)
	a, ok = a.UpdateSlotMetadata("s1", stats, 300)
	require.True(t, ok)

	got, _ := a.Slot("s1")
	assert.Equal(t, int64(900), got.TotalPlaytimeSeconds)
	assert.Equal(t, stats, got.DisplayStats)

	a, _ = a.SoftDeleteSlot("s1")
	_, ok = a.UpdateSlotMetadata("s1", stats, 100)
	assert.False(t, ok)
}

func TestAccount_Entitlements(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")

	a, granted := a.GrantEntitlement("extra_slot_1")
	require.True(t, granted)
	assert.Equal(t, entities.BaseSlots+1, a.MaxSlots())

	_, granted = a.GrantEntitlement("extra_slot_1")
	assert.False(t, granted, "grant is idempotent")

	a = a.AddExtraSlots(2)
	assert.Equal(t, entities.BaseSlots+3, a.MaxSlots())
}

func TestAccount_ClonePreservesExplicitFalseEntitlement(t *testing.T) {
	a := entities.NewCharacterAccount("acct_1")
	a, _ = a.GrantEntitlement("extra_slot_1")
	// A loaded save may carry a revoked entitlement as explicit false.
	a.Entitlements["revoked_slot"] = false

	clone := a.Clone()
	v, ok := clone.Entitlements["revoked_slot"]
	require.True(t, ok)
	assert.False(t, v)
	assert.True(t, clone.Entitlements["extra_slot_1"])
}
