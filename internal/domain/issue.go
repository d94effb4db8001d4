package domain

import "time"

// WorkflowState is an issue's workflow state as reported by the tracker.
// Name is free text ("In Progress"); Type is the tracker's coarse kind
// ("started", "completed", ...).
type WorkflowState struct {
	Name string
	Type string
}

// ProjectRef is the lightweight project reference attached to an issue.
type ProjectRef struct {
	ID   string
	Name string
}

// Issue represents a trackable unit of work fetched from the tracker.
// Collections are replaced wholesale on every fetch cycle; issues are
// never merged incrementally.
type Issue struct {
	ID            string
	Identifier    string
	Title         string
	State         WorkflowState
	Priority      int
	PriorityLabel string
	DueDate       *time.Time
	Project       *ProjectRef
	Assignee      string
	URL           string
}

// Issue status names with dashboard-level meaning.
const (
	StateActive     = "Active"
	StateInProgress = "In Progress"
	StateBlocked    = "Blocked"
	StateInReview   = "In Review"
	StateTodo       = "Todo"
	StateBacklog    = "Backlog"
	StateDone       = "Done"
	StateCanceled   = "Canceled"
	StateDuplicate  = "Duplicate"
)

// issueStateRank orders issues within an expanded project row.
var issueStateRank = map[string]int{
	StateActive:     0,
	StateInProgress: 1,
	StateBlocked:    2,
	StateInReview:   3,
	StateTodo:       4,
	StateBacklog:    5,
	StateDone:       6,
	StateCanceled:   7,
	StateDuplicate:  8,
}

// StateRank returns the sort rank for an issue state name. Unknown states
// rank after all known ones.
func StateRank(name string) int {
	if r, ok := issueStateRank[name]; ok {
		return r
	}
	return len(issueStateRank)
}

// PriorityUrgent is the tracker's highest priority label.
const PriorityUrgent = "Urgent"

// priorityRank orders issues by tracker priority label.
var priorityRank = map[string]int{
	PriorityUrgent: 0,
	"High":         1,
	"Medium":       2,
	"Low":          3,
	"No priority":  4,
}

// PriorityRank returns the sort rank for a priority label. Unlabeled or
// unknown priorities rank last.
func PriorityRank(label string) int {
	if r, ok := priorityRank[label]; ok {
		return r
	}
	return len(priorityRank)
}

// IsClosed reports whether the issue state counts as finished for
// accordion and urgency purposes.
func IsClosed(stateName string) bool {
	return stateName == StateDone || stateName == StateCanceled || stateName == StateDuplicate
}
