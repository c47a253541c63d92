package quest

import (
	"time"
)

// LogCode reports the outcome of a quest-log transition
type LogCode string

// Quest log outcomes
const (
	LogOK                   LogCode = "OK"
	LogAlreadyTracked       LogCode = "ALREADY_TRACKED"
	LogUnknownObjective     LogCode = "UNKNOWN_OBJECTIVE"
	LogNotActive            LogCode = "NOT_ACTIVE"
	LogObjectivesIncomplete LogCode = "OBJECTIVES_INCOMPLETE"
)

// Log partitions quest ids across active, completed, abandoned, and
// failed. An id lives in at most one partition at a time.
type Log struct {
	Active    map[string]Progress `json:"active"`
	Completed []string            `json:"completed,omitempty"`
	Abandoned []string            `json:"abandoned,omitempty"`
	Failed    []string            `json:"failed,omitempty"`
}

// NewLog returns an empty quest log
func NewLog() Log {
	return Log{Active: make(map[string]Progress)}
}

// Clone returns a deep copy
func (l Log) Clone() Log {
	next := Log{
		Active:    make(map[string]Progress, len(l.Active)),
		Completed: append([]string(nil), l.Completed...),
		Abandoned: append([]string(nil), l.Abandoned...),
		Failed:    append([]string(nil), l.Failed...),
	}
	for id, p := range l.Active {
		next.Active[id] = p.Clone()
	}
	return next
}

// Tracks reports whether the quest id is present in any partition
func (l Log) Tracks(questID string) bool {
	if _, ok := l.Active[questID]; ok {
		return true
	}
	return contains(l.Completed, questID) || contains(l.Abandoned, questID) || contains(l.Failed, questID)
}

// IsCompleted reports whether the quest id is in the completed
// partition.
func (l Log) IsCompleted(questID string) bool {
	return contains(l.Completed, questID)
}

// CompletedSet returns the completed partition as a set, for
// requirement evaluation.
func (l Log) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(l.Completed))
	for _, id := range l.Completed {
		set[id] = true
	}
	return set
}

// Accept starts tracking a quest. A quest already in any partition is
// rejected; abandoning first is the path to a retry.
func (l Log) Accept(q Quest, startedAt time.Time) (Log, LogCode) {
	if l.Tracks(q.ID) {
		return l, LogAlreadyTracked
	}
	next := l.Clone()
	next.Active[q.ID] = NewProgress(q, startedAt)
	return next, LogOK
}

// UpdateObjective applies a delta to an objective of an active quest
func (l Log) UpdateObjective(questID, objectiveID string, delta int) (Log, LogCode) {
	p, ok := l.Active[questID]
	if !ok {
		return l, LogNotActive
	}
	updated, ok := p.UpdateObjective(objectiveID, delta)
	if !ok {
		return l, LogUnknownObjective
	}
	next := l.Clone()
	next.Active[questID] = updated
	return next, LogOK
}

// TurnIn completes an active quest whose non-optional objectives are
// all done, moving it to the completed partition.
func (l Log) TurnIn(questID string) (Log, LogCode) {
	p, ok := l.Active[questID]
	if !ok {
		return l, LogNotActive
	}
	if !p.CanTurnIn() {
		return l, LogObjectivesIncomplete
	}
	next := l.Clone()
	delete(next.Active, questID)
	next.Completed = append(next.Completed, questID)
	return next, LogOK
}

// Abandon moves an active quest to the abandoned partition
func (l Log) Abandon(questID string) (Log, LogCode) {
	if _, ok := l.Active[questID]; !ok {
		return l, LogNotActive
	}
	next := l.Clone()
	delete(next.Active, questID)
	next.Abandoned = append(next.Abandoned, questID)
	return next, LogOK
}

// Fail moves an active quest to the failed partition
func (l Log) Fail(questID string) (Log, LogCode) {
	if _, ok := l.Active[questID]; !ok {
		return l, LogNotActive
	}
	next := l.Clone()
	delete(next.Active, questID)
	next.Failed = append(next.Failed, questID)
	return next, LogOK
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
