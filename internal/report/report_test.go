package report

import (
	"testing"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dp(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

var testToday = date(2026, time.August, 29)

func TestUrgentDeadlinesFiltersAndSorts(t *testing.T) {
	// Arrange
	issues := []domain.Issue{
		{ID: "far", DueDate: dp(2026, time.October, 1), State: domain.WorkflowState{Name: domain.StateTodo}},
		{ID: "soon", DueDate: dp(2026, time.September, 3), State: domain.WorkflowState{Name: domain.StateInProgress}},
		{ID: "overdue", DueDate: dp(2026, time.August, 20), State: domain.WorkflowState{Name: domain.StateBlocked}},
		{ID: "edge", DueDate: dp(2026, time.September, 5), State: domain.WorkflowState{Name: domain.StateTodo}},
		{ID: "no-due", State: domain.WorkflowState{Name: domain.StateTodo}},
		{ID: "done", DueDate: dp(2026, time.August, 30), State: domain.WorkflowState{Name: domain.StateDone}},
		{ID: "review", DueDate: dp(2026, time.August, 30), State: domain.WorkflowState{Name: domain.StateInReview}},
	}

	// Act
	got := UrgentDeadlines(issues, testToday)

	// Assert: overdue first, then by due date; closed, in-review,
	// due-less and beyond-the-window issues are all out.
	want := []string{"overdue", "soon", "edge"}
	if len(got) != len(want) {
		t.Fatalf("expected %d issues, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestUrgentDeadlinesWindowBoundary(t *testing.T) {
	// An issue due exactly seven days out is inside the window; eight is not.
	in := domain.Issue{ID: "in", DueDate: dp(2026, time.September, 5), State: domain.WorkflowState{Name: domain.StateTodo}}
	out := domain.Issue{ID: "out", DueDate: dp(2026, time.September, 6), State: domain.WorkflowState{Name: domain.StateTodo}}

	got := UrgentDeadlines([]domain.Issue{in, out}, testToday)

	if len(got) != 1 || got[0].ID != "in" {
		t.Errorf("expected only the seven-day issue, got %+v", got)
	}
}

func TestActiveWorkOrdering(t *testing.T) {
	// Arrange: mixed states and priorities, scrambled.
	issues := []domain.Issue{
		{ID: "prog-high", State: domain.WorkflowState{Name: domain.StateInProgress}, PriorityLabel: "High"},
		{ID: "act-low-due", State: domain.WorkflowState{Name: domain.StateActive}, PriorityLabel: "Low", DueDate: dp(2026, time.September, 2)},
		{ID: "act-low", State: domain.WorkflowState{Name: domain.StateActive}, PriorityLabel: "Low"},
		{ID: "todo", State: domain.WorkflowState{Name: domain.StateTodo}},
		{ID: "act-urgent", State: domain.WorkflowState{Name: domain.StateActive}, PriorityLabel: domain.PriorityUrgent},
		{ID: "prog-urgent", State: domain.WorkflowState{Name: domain.StateInProgress}, PriorityLabel: domain.PriorityUrgent},
	}

	// Act
	got := ActiveWork(issues)

	// Assert: Active before In Progress, then priority, then due-bearing
	// before due-less.
	want := []string{"act-urgent", "act-low-due", "act-low", "prog-urgent", "prog-high"}
	if len(got) != len(want) {
		t.Fatalf("expected %d issues, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestStateLists(t *testing.T) {
	issues := []domain.Issue{
		{ID: "b1", State: domain.WorkflowState{Name: domain.StateBlocked}},
		{ID: "r1", State: domain.WorkflowState{Name: domain.StateInReview}},
		{ID: "d1", State: domain.WorkflowState{Name: domain.StateDone}},
		{ID: "b2", State: domain.WorkflowState{Name: domain.StateBlocked}},
		{ID: "t1", State: domain.WorkflowState{Name: domain.StateTodo}},
	}

	if got := Blocked(issues); len(got) != 2 || got[0].ID != "b1" || got[1].ID != "b2" {
		t.Errorf("unexpected blocked list: %+v", got)
	}
	if got := InReview(issues); len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("unexpected review list: %+v", got)
	}
	if got := RecentlyDone(issues); len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("unexpected done list: %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	// Arrange: urgent counts open urgent-labeled issues only, which is a
	// different cut than the deadline window.
	issues := []domain.Issue{
		{State: domain.WorkflowState{Name: domain.StateActive}, PriorityLabel: domain.PriorityUrgent},
		{State: domain.WorkflowState{Name: domain.StateInProgress}},
		{State: domain.WorkflowState{Name: domain.StateBlocked}},
		{State: domain.WorkflowState{Name: domain.StateInReview}},
		{State: domain.WorkflowState{Name: domain.StateDone}, PriorityLabel: domain.PriorityUrgent},
		{State: domain.WorkflowState{Name: domain.StateBacklog}},
	}

	// Act
	s := Summarize(issues)

	// Assert
	if s.Total != 6 {
		t.Errorf("expected total 6, got %d", s.Total)
	}
	if s.Active != 2 || s.Blocked != 1 || s.InReview != 1 || s.Done != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Urgent != 1 {
		t.Errorf("closed urgent issues must not count, got %d", s.Urgent)
	}
}
