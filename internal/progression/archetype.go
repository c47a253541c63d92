package progression

import (
	"math"

	"github.com/quailworks/quail-api/internal/errors"
)

// MaxArchetypeLevel caps archetype leveling. XP keeps accumulating
// past the cap but grants nothing.
const MaxArchetypeLevel = 10

// Archetype identifies a playable archetype
type Archetype string

// Archetypes
const (
	ArchetypeForager  Archetype = "FORAGER"
	ArchetypeSentinel Archetype = "SENTINEL"
	ArchetypeTrickster Archetype = "TRICKSTER"
	ArchetypeAlchemist Archetype = "ALCHEMIST"
)

// XPForLevel returns the XP required to advance FROM the given level
// to the next: floor(200 * 1.5^(level-1)).
func XPForLevel(level int) int64 {
	return int64(math.Floor(200 * math.Pow(1.5, float64(level-1))))
}

// ArchetypeProgress tracks archetype selection, leveling, and talent
// points. Zero value means "no archetype selected yet".
type ArchetypeProgress struct {
	SelectedArchetype        Archetype   `json:"selected_archetype,omitempty"`
	Level                    int         `json:"level"`
	XP                       int64       `json:"xp"`
	AvailableTalentPoints    int         `json:"available_talent_points"`
	TotalTalentPointsEarned  int         `json:"total_talent_points_earned"`
	TalentTree               *TalentTree `json:"talent_tree,omitempty"`
}

// NewArchetypeProgress returns progress with no archetype selected
func NewArchetypeProgress() ArchetypeProgress {
	return ArchetypeProgress{Level: 1}
}

// Clone returns a deep copy
func (p ArchetypeProgress) Clone() ArchetypeProgress {
	next := p
	next.TalentTree = p.TalentTree.Clone()
	return next
}

// SelectArchetype is a one-time choice. The talent tree comes from the
// catalog lookup performed by the caller.
func (p ArchetypeProgress) SelectArchetype(archetype Archetype, tree *TalentTree) (ArchetypeProgress, error) {
	if p.SelectedArchetype != "" {
		return p, errors.FailedPrecondition("archetype already selected")
	}
	next := p.Clone()
	next.SelectedArchetype = archetype
	next.TalentTree = tree
	if next.Level == 0 {
		next.Level = 1
	}
	return next, nil
}

// GainXP applies XP and performs as many level-ups as the accumulated
// XP affords. Overflow carries forward; each level grants one talent
// point. A no-op when no archetype is selected. Negative amounts are
// caller misuse.
func (p ArchetypeProgress) GainXP(amount int64) (ArchetypeProgress, int, error) {
	if amount < 0 {
		return p, 0, errors.InvalidArgumentf("cannot gain negative XP %d", amount)
	}
	if p.SelectedArchetype == "" {
		return p, 0, nil
	}

	next := p.Clone()
	next.XP += amount

	levelsGained := 0
	for next.Level < MaxArchetypeLevel {
		cost := XPForLevel(next.Level)
		if next.XP < cost {
			break
		}
		next.XP -= cost
		next.Level++
		next.AvailableTalentPoints++
		next.TotalTalentPointsEarned++
		levelsGained++
	}
	return next, levelsGained, nil
}

// UnlockTalentCode reports the outcome of an unlock attempt
type UnlockTalentCode string

// Unlock outcomes
const (
	UnlockOK                 UnlockTalentCode = "OK"
	UnlockNoTree             UnlockTalentCode = "NO_TALENT_TREE"
	UnlockUnknownTalent      UnlockTalentCode = "UNKNOWN_TALENT"
	UnlockAlreadyUnlocked    UnlockTalentCode = "ALREADY_UNLOCKED"
	UnlockRequirementsNotMet UnlockTalentCode = "REQUIREMENTS_NOT_MET"
	UnlockInsufficientPoints UnlockTalentCode = "INSUFFICIENT_POINTS"
)

// UnlockTalent spends talent points to unlock a talent when every
// requirement holds.
func (p ArchetypeProgress) UnlockTalent(talentID string) (ArchetypeProgress, UnlockTalentCode) {
	if p.TalentTree == nil {
		return p, UnlockNoTree
	}
	talent, ok := p.TalentTree.Talents[talentID]
	if !ok {
		return p, UnlockUnknownTalent
	}
	if p.TalentTree.Unlocked[talentID] {
		return p, UnlockAlreadyUnlocked
	}
	if !p.TalentTree.CanUnlock(talentID, p.Level) {
		return p, UnlockRequirementsNotMet
	}
	if p.AvailableTalentPoints < talent.CostInPoints {
		return p, UnlockInsufficientPoints
	}

	next := p.Clone()
	next.AvailableTalentPoints -= talent.CostInPoints
	next.TalentTree.Unlocked[talentID] = true
	return next, UnlockOK
}

// TotalBonus sums unlocked talent magnitudes of the given type
func (p ArchetypeProgress) TotalBonus(typ TalentType) float64 {
	return p.TalentTree.TotalBonus(typ)
}

// ActiveBonuses returns summed magnitudes per talent type
func (p ArchetypeProgress) ActiveBonuses() map[TalentType]float64 {
	return p.TalentTree.ActiveBonuses()
}
