package dashboard

import (
	"fmt"
	"strings"

	"github.com/wjct-public-media/delivery-dashboard/internal/timeline"
)

// buildTimeline renders the Gantt section: month scale, today line,
// grouped project bars and their expanded issue rows.
func (r *HTMLRenderer) buildTimeline(t *timeline.Timeline) string {
	if t == nil || len(t.Groups) == 0 {
		return `<section class="card"><h2>Timeline</h2><div class="empty">No projects to display</div></section>
`
	}

	var sb strings.Builder
	totalWidth := t.LabelWidthPx + t.CanvasWidthPx

	sb.WriteString(`<section class="card timeline">
<h2>Timeline</h2>
<div class="timeline-scroll">
<div class="timeline-inner" style="width:` + fmt.Sprintf("%d", totalWidth) + `px">
`)

	// Grid lines and the today marker overlay the whole row stack. Their
	// horizontal positions are resolved to pixels here so the overlay
	// needs no client-side measurement.
	for _, tick := range t.MonthTicks {
		x := tickLeftPx(t, tick.Pct)
		sb.WriteString(fmt.Sprintf(`<div class="grid-line" style="left:%dpx"></div>
`, x))
	}
	sb.WriteString(fmt.Sprintf(`<div class="today-line" style="left:%dpx" title="Today"></div>
`, tickLeftPx(t, t.TodayPct)))

	// Month scale header.
	sb.WriteString(`<div class="t-row t-header">
	<div class="t-label" style="width:` + fmt.Sprintf("%d", t.LabelWidthPx) + `px"></div>
	<div class="t-track" id="timeline-canvas" style="width:` + fmt.Sprintf("%d", t.CanvasWidthPx) + `px">`)
	for _, tick := range t.MonthTicks {
		sb.WriteString(fmt.Sprintf(`<span class="month-tick" style="left:%.4f%%">%s</span>`, tick.Pct, escapeHTML(tick.Label)))
	}
	sb.WriteString("</div>\n</div>\n")

	for _, g := range t.Groups {
		r.writeGroupRows(&sb, t, g)
	}

	sb.WriteString("</div>\n</div>\n</section>\n")
	return sb.String()
}

func (r *HTMLRenderer) writeGroupRows(sb *strings.Builder, t *timeline.Timeline, g timeline.GroupRow) {
	sb.WriteString(`<div class="t-row t-group">
	<div class="t-label" style="width:` + fmt.Sprintf("%d", t.LabelWidthPx) + `px">` + escapeHTML(g.Label) + `</div>
	<div class="t-track" style="width:` + fmt.Sprintf("%d", t.CanvasWidthPx) + `px">`)
	if g.Bar != nil {
		writeBar(sb, *g.Bar, "bar-group")
	}
	sb.WriteString("</div>\n</div>\n")

	for _, p := range g.Projects {
		r.writeProjectRows(sb, t, p)
	}

	if len(g.Completed) > 0 {
		writeAccordionRow(sb, t, "initiative", g.Key,
			fmt.Sprintf("Completed projects (%d)", len(g.Completed)), g.CompletedExpanded)
		if g.CompletedExpanded {
			for _, p := range g.Completed {
				r.writeProjectRows(sb, t, p)
			}
		}
	}
}

func (r *HTMLRenderer) writeProjectRows(sb *strings.Builder, t *timeline.Timeline, p timeline.ProjectRow) {
	sb.WriteString(`<div class="t-row t-project">
	<div class="t-label t-indent" style="width:` + fmt.Sprintf("%d", t.LabelWidthPx) + `px">`)

	if p.Expandable {
		chevron := "&#9656;"
		if p.Expanded {
			chevron = "&#9662;"
		}
		sb.WriteString(fmt.Sprintf(`<button class="chevron" onclick="toggleRow('project', '%s')" aria-expanded="%t">%s</button>`,
			escapeJSString(p.Project.ID), p.Expanded, chevron))
	} else {
		sb.WriteString(`<span class="chevron-spacer"></span>`)
	}

	if p.Project.Color != "" {
		sb.WriteString(fmt.Sprintf(`<span class="dot" style="background:%s"></span>`, escapeHTML(p.Project.Color)))
	}
	if p.Project.URL != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			escapeHTML(p.Project.URL), escapeHTML(p.Project.Name)))
	} else {
		sb.WriteString(escapeHTML(p.Project.Name))
	}
	sb.WriteString(fmt.Sprintf(` <span class="status-badge cat-%s">%s</span>`, p.Category, escapeHTML(p.StatusName)))
	if p.Overdue {
		sb.WriteString(` <span class="overdue-flag" title="Target date passed">!</span>`)
	}

	sb.WriteString(`</div>
	<div class="t-track" style="width:` + fmt.Sprintf("%d", t.CanvasWidthPx) + `px">`)
	if p.Bar != nil {
		classes := fmt.Sprintf("cat-%s", p.Category)
		if p.Bar.Faded {
			classes += " faded"
		}
		if p.Overdue {
			classes += " overdue"
		}
		writeBar(sb, *p.Bar, classes)
	}
	sb.WriteString("</div>\n</div>\n")

	if !p.Expanded {
		return
	}

	for _, issue := range p.Issues {
		r.writeIssueRow(sb, t, issue)
	}
	if len(p.ClosedIssues) > 0 {
		writeAccordionRow(sb, t, "project-closed", p.Project.ID,
			fmt.Sprintf("Closed issues (%d)", len(p.ClosedIssues)), p.ClosedExpanded)
		if p.ClosedExpanded {
			for _, issue := range p.ClosedIssues {
				r.writeIssueRow(sb, t, issue)
			}
		}
	}
}

func (r *HTMLRenderer) writeIssueRow(sb *strings.Builder, t *timeline.Timeline, row timeline.IssueRow) {
	issue := row.Issue

	sb.WriteString(`<div class="t-row t-issue">
	<div class="t-label t-indent2" style="width:` + fmt.Sprintf("%d", t.LabelWidthPx) + `px">`)
	if issue.URL != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a> %s`,
			escapeHTML(issue.URL), escapeHTML(issue.Identifier), escapeHTML(issue.Title)))
	} else {
		sb.WriteString(escapeHTML(issue.Identifier) + " " + escapeHTML(issue.Title))
	}
	sb.WriteString(fmt.Sprintf(` <span class="state-badge state-%s">%s</span>`,
		cssToken(issue.State.Name), escapeHTML(issue.State.Name)))
	sb.WriteString(`</div>
	<div class="t-track" style="width:` + fmt.Sprintf("%d", t.CanvasWidthPx) + `px">`)
	if row.DuePct != nil {
		class := "due-marker"
		if row.Overdue {
			class += " overdue"
		}
		sb.WriteString(fmt.Sprintf(`<span class="%s" style="left:%.4f%%" title="%s"></span>`,
			class, *row.DuePct, escapeHTML(issue.Title)))
	}
	sb.WriteString("</div>\n</div>\n")
}

// writeAccordionRow renders a full-width clickable divider that toggles
// a collapsed section.
func writeAccordionRow(sb *strings.Builder, t *timeline.Timeline, kind, key, label string, expanded bool) {
	chevron := "&#9656;"
	if expanded {
		chevron = "&#9662;"
	}
	sb.WriteString(fmt.Sprintf(`<div class="t-row t-accordion" onclick="toggleRow('%s', '%s')" role="button" aria-expanded="%t">
	<div class="t-label t-indent" style="width:%dpx">%s %s</div>
	<div class="t-track" style="width:%dpx"></div>
</div>
`, escapeHTML(kind), escapeJSString(key), expanded, t.LabelWidthPx, chevron, escapeHTML(label), t.CanvasWidthPx))
}

func writeBar(sb *strings.Builder, b timeline.Bar, classes string) {
	sb.WriteString(fmt.Sprintf(`<div class="bar %s" style="left:%.4f%%;width:%.4f%%" title="%s"></div>`,
		classes, b.StartPct, b.WidthPct, escapeHTML(b.Tooltip)))
}

func tickLeftPx(t *timeline.Timeline, pct float64) int {
	return t.LabelWidthPx + int(float64(t.CanvasWidthPx)*pct/100)
}

// cssToken lowercases a status name into a class-safe token.
func cssToken(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// escapeJSString makes a value safe inside a single-quoted JS string in
// an inline handler, on top of HTML attribute escaping.
func escapeJSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return escapeHTML(s)
}
