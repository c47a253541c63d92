package progression

import (
	"github.com/quailworks/quail-api/internal/errors"
)

// MaxSkillLevel caps individual skill leveling
const MaxSkillLevel = 10

// XPForSkillLevel returns the XP required to advance FROM the given
// skill level to the next. Skills use a linear curve, unlike the
// archetype's geometric one.
func XPForSkillLevel(level int) int64 {
	return int64(100 * level)
}

// Skill tracks one skill's level, XP, and unlocked abilities
type Skill struct {
	ID        string          `json:"id"`
	Level     int             `json:"level"`
	XP        int64           `json:"xp"`
	Abilities map[string]bool `json:"abilities,omitempty"`
}

// NewSkill returns a level-1 skill
func NewSkill(id string) Skill {
	return Skill{ID: id, Level: 1, Abilities: make(map[string]bool)}
}

// Clone returns a deep copy
func (s Skill) Clone() Skill {
	next := s
	next.Abilities = make(map[string]bool, len(s.Abilities))
	for id := range s.Abilities {
		next.Abilities[id] = true
	}
	return next
}

// GainXP levels the skill up as far as the accumulated XP affords,
// carrying overflow and capping at MaxSkillLevel.
func (s Skill) GainXP(amount int64) (Skill, int, error) {
	if amount < 0 {
		return s, 0, errors.InvalidArgumentf("cannot gain negative skill XP %d", amount)
	}

	next := s.Clone()
	next.XP += amount

	levelsGained := 0
	for next.Level < MaxSkillLevel {
		cost := XPForSkillLevel(next.Level)
		if next.XP < cost {
			break
		}
		next.XP -= cost
		next.Level++
		levelsGained++
	}
	return next, levelsGained, nil
}

// UnlockAbility records an ability as unlocked on the skill
func (s Skill) UnlockAbility(abilityID string) Skill {
	next := s.Clone()
	next.Abilities[abilityID] = true
	return next
}

// SkillRequirementKind tags the skill requirement union. Unlike talent
// requirements, All and Any compose nested requirements.
type SkillRequirementKind string

// Skill requirement kinds
const (
	SkillReqLevel       SkillRequirementKind = "LEVEL"
	SkillReqTotalPoints SkillRequirementKind = "TOTAL_POINTS"
	SkillReqAll         SkillRequirementKind = "ALL"
	SkillReqAny         SkillRequirementKind = "ANY"
)

// SkillRequirement is a tagged union; only the fields matching Kind
// are meaningful.
type SkillRequirement struct {
	Kind         SkillRequirementKind `json:"kind"`
	SkillID      string               `json:"skill_id,omitempty"`
	Level        int                  `json:"level,omitempty"`
	Points       int                  `json:"points,omitempty"`
	Requirements []SkillRequirement   `json:"requirements,omitempty"`
}

// SkillTree holds the per-skill state for a character
type SkillTree struct {
	Skills map[string]Skill `json:"skills"`
}

// NewSkillTree returns an empty skill tree
func NewSkillTree() SkillTree {
	return SkillTree{Skills: make(map[string]Skill)}
}

// Clone returns a deep copy
func (t SkillTree) Clone() SkillTree {
	next := SkillTree{Skills: make(map[string]Skill, len(t.Skills))}
	for id, skill := range t.Skills {
		next.Skills[id] = skill.Clone()
	}
	return next
}

// SkillLevel returns the level of a skill, 0 if untrained
func (t SkillTree) SkillLevel(skillID string) int {
	if skill, ok := t.Skills[skillID]; ok {
		return skill.Level
	}
	return 0
}

// TotalLevels sums every trained skill's level
func (t SkillTree) TotalLevels() int {
	total := 0
	for _, skill := range t.Skills {
		total += skill.Level
	}
	return total
}

// GainSkillXP applies XP to one skill, creating it at level 1 first if
// untrained.
func (t SkillTree) GainSkillXP(skillID string, amount int64) (SkillTree, int, error) {
	next := t.Clone()
	skill, ok := next.Skills[skillID]
	if !ok {
		skill = NewSkill(skillID)
	}
	skill, levels, err := skill.GainXP(amount)
	if err != nil {
		return t, 0, err
	}
	next.Skills[skillID] = skill
	return next, levels, nil
}

// Satisfied evaluates a requirement against the tree. All and Any
// recurse; unknown kinds evaluate to false.
func (t SkillTree) Satisfied(req SkillRequirement) bool {
	switch req.Kind {
	case SkillReqLevel:
		return t.SkillLevel(req.SkillID) >= req.Level
	case SkillReqTotalPoints:
		return t.TotalLevels() >= req.Points
	case SkillReqAll:
		for _, child := range req.Requirements {
			if !t.Satisfied(child) {
				return false
			}
		}
		return true
	case SkillReqAny:
		for _, child := range req.Requirements {
			if t.Satisfied(child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
