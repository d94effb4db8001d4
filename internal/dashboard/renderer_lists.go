package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/dates"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
	"github.com/wjct-public-media/delivery-dashboard/internal/report"
)

// buildSummaryCards renders the headline count cards.
func (r *HTMLRenderer) buildSummaryCards(s report.Summary) string {
	cards := []struct {
		label string
		count int
		class string
	}{
		{"Total Issues", s.Total, ""},
		{"Active", s.Active, "cat-active"},
		{"Blocked", s.Blocked, "blocked"},
		{"In Review", s.InReview, "review"},
		{"Done", s.Done, "cat-completed"},
		{"Urgent", s.Urgent, "urgent"},
	}

	var sb strings.Builder
	sb.WriteString(`<section class="summary-cards">
`)
	for _, c := range cards {
		sb.WriteString(fmt.Sprintf(`<div class="card summary-card %s">
	<div class="summary-count">%d</div>
	<div class="summary-label">%s</div>
</div>
`, c.class, c.count, escapeHTML(c.label)))
	}
	sb.WriteString("</section>\n")
	return sb.String()
}

// buildIssuePanels renders the five side-panel lists.
func (r *HTMLRenderer) buildIssuePanels(data PageData) string {
	var sb strings.Builder
	sb.WriteString(`<section class="panels">
`)
	sb.WriteString(r.buildIssuePanel("Urgent Deadlines", "Due within a week", data.Urgent, data.Today))
	sb.WriteString(r.buildIssuePanel("Active Work", "", data.Active, data.Today))
	sb.WriteString(r.buildIssuePanel("Blocked", "", data.Blocked, data.Today))
	sb.WriteString(r.buildIssuePanel("In Review", "", data.InReview, data.Today))
	sb.WriteString(r.buildIssuePanel("Recently Done", "", data.Done, data.Today))
	sb.WriteString("</section>\n")
	return sb.String()
}

func (r *HTMLRenderer) buildIssuePanel(title, subtitle string, issues []domain.Issue, today time.Time) string {
	var sb strings.Builder

	sb.WriteString(`<div class="card panel">
	<h2>` + escapeHTML(title) + `</h2>
`)
	if subtitle != "" {
		sb.WriteString(`	<p class="meta-text">` + escapeHTML(subtitle) + `</p>
`)
	}
	if len(issues) == 0 {
		sb.WriteString(`	<div class="empty">Nothing here</div>
</div>
`)
		return sb.String()
	}

	sb.WriteString("\t<ul class=\"issue-list\">\n")
	for _, issue := range issues {
		sb.WriteString("\t\t<li class=\"issue-item\">")
		if issue.URL != "" {
			sb.WriteString(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
				escapeHTML(issue.URL), escapeHTML(issue.Identifier)))
		} else {
			sb.WriteString(escapeHTML(issue.Identifier))
		}
		sb.WriteString(" " + escapeHTML(issue.Title))

		if issue.PriorityLabel != "" && issue.PriorityLabel != "No priority" {
			sb.WriteString(fmt.Sprintf(` <span class="priority-badge priority-%s">%s</span>`,
				cssToken(issue.PriorityLabel), escapeHTML(issue.PriorityLabel)))
		}
		if issue.Project != nil && issue.Project.Name != "" {
			sb.WriteString(` <span class="meta-text">` + escapeHTML(issue.Project.Name) + `</span>`)
		}
		if issue.Assignee != "" {
			sb.WriteString(` <span class="meta-text">` + escapeHTML(issue.Assignee) + `</span>`)
		}
		if issue.DueDate != nil {
			due := dates.FormatRelative(*issue.DueDate, today)
			class := "due-text"
			if issue.DueDate.Before(today) && !domain.IsClosed(issue.State.Name) {
				class += " overdue"
			}
			sb.WriteString(fmt.Sprintf(` <span class="%s">%s</span>`, class, escapeHTML(due)))
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("\t</ul>\n</div>\n")
	return sb.String()
}
