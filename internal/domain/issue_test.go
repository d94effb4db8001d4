package domain

import (
	"testing"
	"time"
)

func TestStateRankOrdersActiveFirst(t *testing.T) {
	order := []string{
		StateActive, StateInProgress, StateBlocked, StateInReview,
		StateTodo, StateBacklog, StateDone, StateCanceled, StateDuplicate,
	}

	for i := 1; i < len(order); i++ {
		if StateRank(order[i-1]) >= StateRank(order[i]) {
			t.Errorf("expected %q to rank before %q", order[i-1], order[i])
		}
	}
}

func TestStateRankUnknownRanksLast(t *testing.T) {
	if StateRank("Mysterious") <= StateRank(StateDuplicate) {
		t.Error("unknown state should rank after all known states")
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityRank(PriorityUrgent) >= PriorityRank("High") {
		t.Error("urgent should rank before high")
	}
	if PriorityRank("") <= PriorityRank("No priority") {
		t.Error("empty label should rank after no priority")
	}
}

func TestIsClosed(t *testing.T) {
	for _, s := range []string{StateDone, StateCanceled, StateDuplicate} {
		if !IsClosed(s) {
			t.Errorf("expected %q to be closed", s)
		}
	}
	for _, s := range []string{StateActive, StateInProgress, StateBlocked, StateInReview, StateTodo, StateBacklog} {
		if IsClosed(s) {
			t.Errorf("expected %q to be open", s)
		}
	}
}

func TestDeriveInitiativesKeepsFirstEncounterOrder(t *testing.T) {
	// Arrange
	d := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.Local)
	projects := []Project{
		{ID: "p1", Initiatives: []InitiativeRef{{ID: "i2", Name: "Beta"}}},
		{ID: "p2", Initiatives: []InitiativeRef{{ID: "i1", Name: "Alpha", TargetDate: &d}, {ID: "i2", Name: "Beta"}}},
		{ID: "p3"},
	}

	// Act
	got := DeriveInitiatives(projects)

	// Assert
	if len(got) != 2 {
		t.Fatalf("expected 2 initiatives, got %d", len(got))
	}
	if got[0].ID != "i2" || got[1].ID != "i1" {
		t.Errorf("expected order [i2 i1], got [%s %s]", got[0].ID, got[1].ID)
	}
	if got[1].TargetDate == nil || !got[1].TargetDate.Equal(d) {
		t.Error("expected target date carried through")
	}
}
