// Package report derives the issue lists and summary counts shown in the
// side panels. Every function is a pure filter over a snapshot's issues.
package report

import (
	"sort"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/dates"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// urgentWindowDays is how far ahead the deadline list looks.
const urgentWindowDays = 7

// UrgentDeadlines returns issues due within the next week (overdue
// included), earliest first. Finished and in-review work is excluded;
// a review that slips past its date is the reviewer's queue, not a
// delivery risk.
func UrgentDeadlines(issues []domain.Issue, today time.Time) []domain.Issue {
	today = dates.Midnight(today)
	cutoff := today.AddDate(0, 0, urgentWindowDays)

	var out []domain.Issue
	for _, issue := range issues {
		if issue.DueDate == nil {
			continue
		}
		if domain.IsClosed(issue.State.Name) || issue.State.Name == domain.StateInReview {
			continue
		}
		if issue.DueDate.After(cutoff) {
			continue
		}
		out = append(out, issue)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(*out[j].DueDate)
	})
	return out
}

// ActiveWork lists everything currently being worked: Active states
// ahead of In Progress, then by priority, then nearest due date with
// due-less issues last.
func ActiveWork(issues []domain.Issue) []domain.Issue {
	var out []domain.Issue
	for _, issue := range issues {
		if issue.State.Name == domain.StateActive || issue.State.Name == domain.StateInProgress {
			out = append(out, issue)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.State.Name != b.State.Name {
			return a.State.Name == domain.StateActive
		}
		if ra, rb := domain.PriorityRank(a.PriorityLabel), domain.PriorityRank(b.PriorityLabel); ra != rb {
			return ra < rb
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil:
			return a.DueDate.Before(*b.DueDate)
		default:
			return false
		}
	})
	return out
}

// Blocked returns issues in the Blocked state, snapshot order.
func Blocked(issues []domain.Issue) []domain.Issue {
	return byState(issues, domain.StateBlocked)
}

// InReview returns issues awaiting review, snapshot order.
func InReview(issues []domain.Issue) []domain.Issue {
	return byState(issues, domain.StateInReview)
}

// RecentlyDone returns completed issues, snapshot order.
func RecentlyDone(issues []domain.Issue) []domain.Issue {
	return byState(issues, domain.StateDone)
}

func byState(issues []domain.Issue, state string) []domain.Issue {
	var out []domain.Issue
	for _, issue := range issues {
		if issue.State.Name == state {
			out = append(out, issue)
		}
	}
	return out
}

// Summary holds the headline card counts.
type Summary struct {
	Total    int
	Active   int
	Blocked  int
	InReview int
	Done     int
	Urgent   int
}

// Summarize counts issues per headline card. Urgent counts open issues
// carrying the Urgent priority label, which is a different cut than the
// deadline list.
func Summarize(issues []domain.Issue) Summary {
	var s Summary
	s.Total = len(issues)
	for _, issue := range issues {
		switch issue.State.Name {
		case domain.StateActive, domain.StateInProgress:
			s.Active++
		case domain.StateBlocked:
			s.Blocked++
		case domain.StateInReview:
			s.InReview++
		case domain.StateDone:
			s.Done++
		}
		if issue.PriorityLabel == domain.PriorityUrgent && !domain.IsClosed(issue.State.Name) {
			s.Urgent++
		}
	}
	return s
}
