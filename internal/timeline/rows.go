package timeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/dates"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
	"github.com/wjct-public-media/delivery-dashboard/internal/service"
)

// minBarWidthPct keeps zero-duration spans visible as a sliver.
const minBarWidthPct = 0.5

// Timeline is the fully laid-out row tree the renderer draws. Build is a
// pure function of (snapshot, view state, today): the same inputs always
// produce an identical tree.
type Timeline struct {
	Range         DateRange
	RangeMonths   int // the view-state setting, 0 for auto
	TodayPct      float64
	MonthTicks    []MonthTick
	CanvasWidthPx int
	LabelWidthPx  int
	Groups        []GroupRow
}

// GroupRow is an initiative heading row with its nested project rows.
// Finished member projects sit behind a per-group accordion.
type GroupRow struct {
	Key      string // accordion key, the group label
	Label    string
	Bar      *Bar
	Projects []ProjectRow // active and neutral members, in rank order

	Completed         []ProjectRow // finished members behind the accordion
	CompletedExpanded bool
}

// ProjectRow is one project on the timeline. Expandable when the project
// has issues; expansion reveals issue rows, with closed issues behind a
// nested accordion independent of the group-level one.
type ProjectRow struct {
	Project    domain.Project
	StatusName string
	Category   domain.Category
	Overdue    bool
	Bar        *Bar

	Expandable bool
	Expanded   bool
	Issues     []IssueRow

	ClosedIssues   []IssueRow
	ClosedExpanded bool
}

// IssueRow is a leaf row: issues are point-in-time, so they carry a due
// marker position instead of a bar.
type IssueRow struct {
	Issue   domain.Issue
	DuePct  *float64
	Overdue bool
}

// Bar is a horizontal span in timeline coordinates.
type Bar struct {
	StartPct float64
	WidthPct float64
	// Faded marks a bar whose target date is missing; it extends to the
	// range end instead of a fixed offset.
	Faded   bool
	Tooltip string
}

// Build lays out the timeline for a data snapshot under a view state.
func Build(snap service.Snapshot, state *ViewState, classifier *domain.Classifier, today time.Time) *Timeline {
	today = dates.Midnight(today)
	r := ComputeRange(snap.Projects, state.RangeMonths, today)

	issuesByProject := make(map[string][]domain.Issue)
	for _, issue := range snap.Issues {
		if issue.Project != nil {
			issuesByProject[issue.Project.ID] = append(issuesByProject[issue.Project.ID], issue)
		}
	}

	t := &Timeline{
		Range:         r,
		RangeMonths:   state.RangeMonths,
		TodayPct:      r.PositionPercent(today),
		MonthTicks:    r.MonthTicks(),
		CanvasWidthPx: CanvasWidthPx(r.MonthCount()),
		LabelWidthPx:  state.LabelWidthPx,
	}

	for _, g := range BuildGroups(snap.Projects, snap.Initiatives, classifier) {
		row := GroupRow{
			Key:               g.Label,
			Label:             g.Label,
			Bar:               groupBar(g, r),
			CompletedExpanded: state.InitiativeAccordions[g.Label],
		}

		for _, p := range g.Projects {
			pr := buildProjectRow(p, issuesByProject[p.ID], state, classifier, r, today)
			if pr.Category.IsFinished() {
				row.Completed = append(row.Completed, pr)
			} else {
				row.Projects = append(row.Projects, pr)
			}
		}
		t.Groups = append(t.Groups, row)
	}
	return t
}

// groupBar spans the min and max dates across member projects. The
// initiative's own target date, when present, wins as the bar's end.
// The unassigned bucket renders a bare heading with no bar.
func groupBar(g Group, r DateRange) *Bar {
	if g.Initiative == nil {
		return nil
	}

	var min, max time.Time
	for _, p := range g.Projects {
		for _, d := range []*time.Time{p.StartDate, p.TargetDate} {
			if d == nil {
				continue
			}
			if min.IsZero() || d.Before(min) {
				min = *d
			}
			if max.IsZero() || d.After(max) {
				max = *d
			}
		}
	}
	if min.IsZero() {
		return nil
	}

	end := max
	if g.Initiative.TargetDate != nil {
		end = *g.Initiative.TargetDate
	}

	s := r.PositionPercent(min)
	e := r.PositionPercent(end)
	return &Bar{
		StartPct: s,
		WidthPct: math.Max(minBarWidthPct, e-s),
		Tooltip:  g.Label,
	}
}

func buildProjectRow(p domain.Project, issues []domain.Issue, state *ViewState, classifier *domain.Classifier, r DateRange, today time.Time) ProjectRow {
	category := classifier.Categorize(p.Status.Name)
	overdue := p.TargetDate != nil && p.TargetDate.Before(today) && !category.IsFinished()

	row := ProjectRow{
		Project:        p,
		StatusName:     p.Status.Name,
		Category:       category,
		Overdue:        overdue,
		Bar:            projectBar(p, r, today),
		Expandable:     len(issues) > 0,
		Expanded:       state.ExpandedProjects[p.ID],
		ClosedExpanded: state.ProjectAccordions[p.ID],
	}

	if row.Expanded {
		open, closed := splitIssues(issues)
		row.Issues = buildIssueRows(open, r, today)
		row.ClosedIssues = buildIssueRows(closed, r, today)
	}
	return row
}

// projectBar maps the project span onto the range. A missing start
// defaults to today; a missing target fades the bar and extends it to
// the range end. A project with neither date gets no bar at all.
func projectBar(p domain.Project, r DateRange, today time.Time) *Bar {
	if p.StartDate == nil && p.TargetDate == nil {
		return nil
	}

	start := today
	if p.StartDate != nil {
		start = *p.StartDate
	}

	faded := p.TargetDate == nil
	end := r.End
	if p.TargetDate != nil {
		end = *p.TargetDate
	}

	s := r.PositionPercent(start)
	e := r.PositionPercent(end)
	return &Bar{
		StartPct: s,
		WidthPct: math.Max(minBarWidthPct, e-s),
		Faded:    faded,
		Tooltip:  fmt.Sprintf("%s · %s · %s → %s", p.Name, p.Status.Name, barDate(p.StartDate, "No start"), barDate(p.TargetDate, "No target")),
	}
}

func barDate(d *time.Time, missing string) string {
	if d == nil {
		return missing
	}
	return d.Format("1/2/2006")
}

// splitIssues sorts issues into their display order and separates the
// closed ones for the nested accordion.
func splitIssues(issues []domain.Issue) (open, closed []domain.Issue) {
	ordered := make([]domain.Issue, len(issues))
	copy(ordered, issues)
	sortIssues(ordered)

	for _, issue := range ordered {
		if domain.IsClosed(issue.State.Name) {
			closed = append(closed, issue)
		} else {
			open = append(open, issue)
		}
	}
	return open, closed
}

// sortIssues orders by status rank, then due date ascending with
// due-bearing issues before due-less ones on rank ties. Stable.
func sortIssues(issues []domain.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if ra, rb := domain.StateRank(a.State.Name), domain.StateRank(b.State.Name); ra != rb {
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
}

func buildIssueRows(issues []domain.Issue, r DateRange, today time.Time) []IssueRow {
	rows := make([]IssueRow, len(issues))
	for i, issue := range issues {
		row := IssueRow{Issue: issue}
		if issue.DueDate != nil {
			pct := r.PositionPercent(*issue.DueDate)
			row.DuePct = &pct
			row.Overdue = issue.DueDate.Before(today) && !domain.IsClosed(issue.State.Name)
		}
		rows[i] = row
	}
	return rows
}
