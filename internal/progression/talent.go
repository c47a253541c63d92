// Package progression implements archetype, talent, and skill leveling
// state machines. All types are value-semantic: transitions return new
// snapshots and never mutate the receiver.
package progression

// TalentType categorizes what a talent boosts
type TalentType string

// Talent types
const (
	TalentForaging   TalentType = "FORAGING"
	TalentStealth    TalentType = "STEALTH"
	TalentCharisma   TalentType = "CHARISMA"
	TalentCrafting   TalentType = "CRAFTING"
	TalentVitality   TalentType = "VITALITY"
	TalentHoarding   TalentType = "HOARDING"
	TalentNavigation TalentType = "NAVIGATION"
)

// TalentRequirementKind tags the closed set of talent requirement
// variants. Requirements are leaf predicates; there is no nesting.
type TalentRequirementKind string

// Talent requirement kinds
const (
	TalentReqLevel                TalentRequirementKind = "LEVEL"
	TalentReqPrerequisiteTalent   TalentRequirementKind = "PREREQUISITE_TALENT"
	TalentReqAllTalents           TalentRequirementKind = "ALL_TALENTS"
	TalentReqAnyTalent            TalentRequirementKind = "ANY_TALENT"
	TalentReqTotalTalentsUnlocked TalentRequirementKind = "TOTAL_TALENTS_UNLOCKED"
)

// TalentRequirement is a tagged union; only the fields matching Kind
// are meaningful.
type TalentRequirement struct {
	Kind      TalentRequirementKind `json:"kind"`
	Level     int                   `json:"level,omitempty"`
	TalentID  string                `json:"talent_id,omitempty"`
	TalentIDs []string              `json:"talent_ids,omitempty"`
	Count     int                   `json:"count,omitempty"`
}

// Satisfied evaluates the requirement against the current archetype
// level and unlocked-talent set. Unknown kinds evaluate to false so a
// malformed catalog entry can never unlock anything by accident.
func (r TalentRequirement) Satisfied(level int, unlocked map[string]bool) bool {
	switch r.Kind {
	case TalentReqLevel:
		return level >= r.Level
	case TalentReqPrerequisiteTalent:
		return unlocked[r.TalentID]
	case TalentReqAllTalents:
		for _, id := range r.TalentIDs {
			if !unlocked[id] {
				return false
			}
		}
		return true
	case TalentReqAnyTalent:
		for _, id := range r.TalentIDs {
			if unlocked[id] {
				return true
			}
		}
		return false
	case TalentReqTotalTalentsUnlocked:
		return len(unlocked) >= r.Count
	default:
		return false
	}
}

// Talent is a static node in an archetype's unlock graph
type Talent struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         TalentType          `json:"type"`
	Magnitude    float64             `json:"magnitude"`
	CostInPoints int                 `json:"cost_in_points"`
	Requirements []TalentRequirement `json:"requirements,omitempty"`
}

// TalentTree pairs the static talent definitions for an archetype with
// the player's unlocked set.
type TalentTree struct {
	ArchetypeID string            `json:"archetype_id"`
	Talents     map[string]Talent `json:"talents"`
	Unlocked    map[string]bool   `json:"unlocked"`
}

// NewTalentTree builds a fresh tree from catalog definitions
func NewTalentTree(archetypeID string, talents map[string]Talent) *TalentTree {
	return &TalentTree{
		ArchetypeID: archetypeID,
		Talents:     talents,
		Unlocked:    make(map[string]bool),
	}
}

// Clone returns a deep copy of the tree
func (t *TalentTree) Clone() *TalentTree {
	if t == nil {
		return nil
	}
	talents := make(map[string]Talent, len(t.Talents))
	for id, talent := range t.Talents {
		talents[id] = talent
	}
	unlocked := make(map[string]bool, len(t.Unlocked))
	for id := range t.Unlocked {
		unlocked[id] = true
	}
	return &TalentTree{ArchetypeID: t.ArchetypeID, Talents: talents, Unlocked: unlocked}
}

// CanUnlock reports whether every requirement of the talent holds at
// the given level. It does not check point affordability.
func (t *TalentTree) CanUnlock(talentID string, level int) bool {
	talent, ok := t.Talents[talentID]
	if !ok {
		return false
	}
	for _, req := range talent.Requirements {
		if !req.Satisfied(level, t.Unlocked) {
			return false
		}
	}
	return true
}

// TotalBonus sums magnitudes of unlocked talents of the given type
func (t *TalentTree) TotalBonus(typ TalentType) float64 {
	if t == nil {
		return 0
	}
	var total float64
	for id := range t.Unlocked {
		if talent, ok := t.Talents[id]; ok && talent.Type == typ {
			total += talent.Magnitude
		}
	}
	return total
}

// ActiveBonuses returns the summed magnitude per talent type across
// all unlocked talents.
func (t *TalentTree) ActiveBonuses() map[TalentType]float64 {
	bonuses := make(map[TalentType]float64)
	if t == nil {
		return bonuses
	}
	for id := range t.Unlocked {
		if talent, ok := t.Talents[id]; ok {
			bonuses[talent.Type] += talent.Magnitude
		}
	}
	return bonuses
}
