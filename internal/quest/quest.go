// Package quest implements quest progress tracking: objective
// clamping, turn-in gating, and the quest log partition.
package quest

import (
	"time"

	"github.com/quailworks/quail-api/internal/progression"
)

// Status is the lifecycle state of a quest instance
type Status string

// Quest statuses
const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusAbandoned Status = "ABANDONED"
	StatusTurnedIn  Status = "TURNED_IN"
)

// RequirementKind tags the quest requirement union. A quest's
// requirements are implicitly AND-combined; there is no composite
// variant.
type RequirementKind string

// Quest requirement kinds
const (
	ReqPrerequisiteQuest RequirementKind = "PREREQUISITE_QUEST"
	ReqMinimumLevel      RequirementKind = "MINIMUM_LEVEL"
	ReqMinimumSkill      RequirementKind = "MINIMUM_SKILL"
)

// Requirement is a tagged union; only the fields matching Kind are
// meaningful.
type Requirement struct {
	Kind    RequirementKind `json:"kind"`
	QuestID string          `json:"quest_id,omitempty"`
	Level   int             `json:"level,omitempty"`
	SkillID string          `json:"skill_id,omitempty"`
}

// Rewards is the static reward block of a quest
type Rewards struct {
	Glimmer int64          `json:"glimmer,omitempty"`
	XP      int64          `json:"xp,omitempty"`
	Items   map[string]int `json:"items,omitempty"`
}

// Objective is a single quest goal. CurrentProgress is always clamped
// to [0, TargetQuantity].
type Objective struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	TargetQuantity  int    `json:"target_quantity"`
	CurrentProgress int    `json:"current_progress"`
	IsOptional      bool   `json:"is_optional,omitempty"`
}

// UpdateProgress applies a signed delta, clamping the result into
// [0, TargetQuantity].
func (o Objective) UpdateProgress(delta int) Objective {
	next := o
	next.CurrentProgress += delta
	if next.CurrentProgress < 0 {
		next.CurrentProgress = 0
	}
	if next.CurrentProgress > next.TargetQuantity {
		next.CurrentProgress = next.TargetQuantity
	}
	return next
}

// IsComplete reports whether the objective hit its target
func (o Objective) IsComplete() bool {
	return o.CurrentProgress >= o.TargetQuantity
}

// Quest is static content; Progress is the mutable instance
type Quest struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Objectives   []Objective   `json:"objectives"`
	Rewards      Rewards       `json:"rewards"`
	Requirements []Requirement `json:"requirements,omitempty"`
}

// RequirementsMet evaluates every requirement (AND-combined) against
// the player's completed quests, archetype level, and skill tree.
func (q Quest) RequirementsMet(completed map[string]bool, level int, skills progression.SkillTree) bool {
	for _, req := range q.Requirements {
		switch req.Kind {
		case ReqPrerequisiteQuest:
			if !completed[req.QuestID] {
				return false
			}
		case ReqMinimumLevel:
			if level < req.Level {
				return false
			}
		case ReqMinimumSkill:
			if skills.SkillLevel(req.SkillID) < req.Level {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Progress is the mutable instance of an accepted quest. It carries
// its own copies of the objectives.
type Progress struct {
	QuestID     string      `json:"quest_id"`
	Status      Status      `json:"status"`
	Objectives  []Objective `json:"objectives"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// NewProgress starts an active instance of a quest, copying its
// objectives with zero progress.
func NewProgress(q Quest, startedAt time.Time) Progress {
	objectives := make([]Objective, len(q.Objectives))
	copy(objectives, q.Objectives)
	for i := range objectives {
		objectives[i].CurrentProgress = 0
	}
	return Progress{
		QuestID:    q.ID,
		Status:     StatusActive,
		Objectives: objectives,
		StartedAt:  startedAt,
	}
}

// Clone returns a deep copy
func (p Progress) Clone() Progress {
	next := p
	next.Objectives = make([]Objective, len(p.Objectives))
	copy(next.Objectives, p.Objectives)
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		next.CompletedAt = &at
	}
	return next
}

// UpdateObjective applies a delta to one objective by id. Unknown ids
// leave the progress unchanged.
func (p Progress) UpdateObjective(objectiveID string, delta int) (Progress, bool) {
	next := p.Clone()
	for i := range next.Objectives {
		if next.Objectives[i].ID == objectiveID {
			next.Objectives[i] = next.Objectives[i].UpdateProgress(delta)
			return next, true
		}
	}
	return p, false
}

// CanTurnIn requires the quest to be active with every non-optional
// objective complete.
func (p Progress) CanTurnIn() bool {
	if p.Status != StatusActive {
		return false
	}
	for _, obj := range p.Objectives {
		if !obj.IsOptional && !obj.IsComplete() {
			return false
		}
	}
	return true
}
