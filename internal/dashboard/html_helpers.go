package dashboard

import (
	"fmt"
	"strings"
)

// htmlHead returns the document head with meta tags and the shared CSS.
func htmlHead(title, description string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<meta name="description" content="%s">

	<link rel="icon" type="image/svg+xml" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='0.9em' font-size='90'>📅</text></svg>">

	<title>%s</title>
	%s
</head>`, escapeHTML(description), escapeHTML(title), commonCSS())
}

// commonCSS returns the shared styles for the dashboard page.
func commonCSS() string {
	return `<style>
	:root {
		--bg-primary: #0f172a;
		--bg-secondary: #1e293b;
		--bg-track: #16213a;
		--text-primary: #e2e8f0;
		--text-secondary: #94a3b8;
		--link-color: #60a5fa;
		--border-color: #334155;
		--grid-line: #24324d;
		--today-line: #f59e0b;
		--active: #8b5cf6;
		--completed: #22c55e;
		--cancelled: #64748b;
		--paused: #f59e0b;
		--backlog: #475569;
		--danger: #ef4444;
	}

	* { box-sizing: border-box; margin: 0; padding: 0; }

	body {
		font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif;
		background: var(--bg-primary);
		color: var(--text-primary);
		padding: 20px;
		line-height: 1.5;
	}

	.container { max-width: 1400px; margin: 0 auto; }

	h1 { font-size: 1.6rem; font-weight: 600; }
	h2 { font-size: 1.1rem; font-weight: 600; margin-bottom: 10px; }

	a { color: var(--link-color); text-decoration: none; }
	a:hover { text-decoration: underline; }

	.card {
		background: var(--bg-secondary);
		border: 1px solid var(--border-color);
		border-radius: 8px;
		padding: 16px;
		margin-bottom: 20px;
	}

	.meta-text { color: var(--text-secondary); font-size: 13px; }
	.empty { color: var(--text-secondary); padding: 20px; text-align: center; }

	/* Top bar */
	.topbar {
		display: flex;
		justify-content: space-between;
		align-items: center;
		flex-wrap: wrap;
		gap: 12px;
		margin-bottom: 20px;
	}
	.controls { display: flex; align-items: center; gap: 10px; flex-wrap: wrap; }
	.control-label { font-size: 13px; color: var(--text-secondary); display: flex; align-items: center; gap: 6px; }
	.btn {
		background: var(--bg-secondary);
		color: var(--text-primary);
		border: 1px solid var(--border-color);
		border-radius: 6px;
		padding: 6px 12px;
		cursor: pointer;
		font-size: 14px;
	}
	.btn:hover { border-color: var(--link-color); }
	.btn-primary { background: #2563eb; border-color: #2563eb; color: white; }
	.btn:disabled { opacity: 0.6; cursor: default; }
	select, input[type="range"] { accent-color: var(--link-color); background: var(--bg-secondary); color: var(--text-primary); border: 1px solid var(--border-color); border-radius: 4px; padding: 4px; }

	/* Summary cards */
	.summary-cards {
		display: grid;
		grid-template-columns: repeat(auto-fit, minmax(140px, 1fr));
		gap: 12px;
		margin-bottom: 20px;
	}
	.summary-card { text-align: center; margin-bottom: 0; }
	.summary-count { font-size: 1.8rem; font-weight: 700; }
	.summary-label { color: var(--text-secondary); font-size: 13px; }
	.summary-card.cat-active .summary-count { color: var(--active); }
	.summary-card.blocked .summary-count { color: var(--danger); }
	.summary-card.review .summary-count { color: var(--paused); }
	.summary-card.cat-completed .summary-count { color: var(--completed); }
	.summary-card.urgent .summary-count { color: var(--danger); }

	/* Timeline */
	.timeline-scroll { overflow-x: auto; }
	.timeline-inner { position: relative; }
	.grid-line { position: absolute; top: 28px; bottom: 0; width: 1px; background: var(--grid-line); }
	.today-line { position: absolute; top: 28px; bottom: 0; width: 2px; background: var(--today-line); z-index: 2; }

	.t-row { display: flex; align-items: center; min-height: 30px; position: relative; }
	.t-header { height: 28px; }
	.t-label {
		flex: none;
		padding: 2px 10px 2px 4px;
		white-space: nowrap;
		overflow: hidden;
		text-overflow: ellipsis;
		font-size: 14px;
	}
	.t-track { flex: none; position: relative; height: 100%; min-height: 30px; }
	.t-group { background: rgba(255,255,255,0.03); font-weight: 600; }
	.t-indent { padding-left: 18px; }
	.t-indent2 { padding-left: 44px; font-size: 13px; color: var(--text-secondary); }
	.t-accordion { cursor: pointer; color: var(--text-secondary); font-size: 13px; }
	.t-accordion:hover { color: var(--text-primary); }
	.month-tick {
		position: absolute;
		top: 4px;
		font-size: 11px;
		color: var(--text-secondary);
		transform: translateX(2px);
		white-space: nowrap;
	}

	.chevron {
		background: none;
		border: none;
		color: var(--text-secondary);
		cursor: pointer;
		font-size: 12px;
		width: 18px;
	}
	.chevron-spacer { display: inline-block; width: 18px; }
	.dot { display: inline-block; width: 9px; height: 9px; border-radius: 50%; margin-right: 5px; }

	.bar {
		position: absolute;
		top: 7px;
		height: 16px;
		border-radius: 4px;
		min-width: 3px;
		z-index: 1;
	}
	.bar-group { background: var(--border-color); height: 8px; top: 11px; }
	.bar.cat-active { background: var(--active); }
	.bar.cat-completed { background: var(--completed); }
	.bar.cat-cancelled { background: var(--cancelled); }
	.bar.cat-paused { background: var(--paused); }
	.bar.cat-backlog { background: var(--backlog); }
	.bar.faded { opacity: 0.45; border-right: 2px dashed var(--text-secondary); }
	.bar.overdue { box-shadow: 0 0 0 1.5px var(--danger); }

	.due-marker {
		position: absolute;
		top: 10px;
		width: 10px;
		height: 10px;
		border-radius: 50%;
		background: var(--link-color);
		transform: translateX(-5px);
		z-index: 1;
	}
	.due-marker.overdue { background: var(--danger); }

	/* Badges */
	.status-badge, .state-badge, .priority-badge {
		display: inline-block;
		padding: 1px 7px;
		border-radius: 10px;
		font-size: 11px;
		font-weight: 500;
	}
	.status-badge.cat-active { background: rgba(139,92,246,0.2); color: var(--active); }
	.status-badge.cat-completed { background: rgba(34,197,94,0.2); color: var(--completed); }
	.status-badge.cat-cancelled { background: rgba(100,116,139,0.25); color: var(--text-secondary); }
	.status-badge.cat-paused { background: rgba(245,158,11,0.2); color: var(--paused); }
	.status-badge.cat-backlog { background: rgba(71,85,105,0.3); color: var(--text-secondary); }
	.state-badge { background: rgba(148,163,184,0.15); color: var(--text-secondary); }
	.state-badge.state-blocked { background: rgba(239,68,68,0.2); color: var(--danger); }
	.state-badge.state-done { background: rgba(34,197,94,0.2); color: var(--completed); }
	.priority-badge.priority-urgent { background: rgba(239,68,68,0.2); color: var(--danger); }
	.priority-badge.priority-high { background: rgba(245,158,11,0.2); color: var(--paused); }
	.overdue-flag { color: var(--danger); font-weight: 700; }
	.due-text { font-size: 12px; color: var(--text-secondary); }
	.due-text.overdue { color: var(--danger); }

	/* Panels */
	.panels {
		display: grid;
		grid-template-columns: repeat(auto-fit, minmax(320px, 1fr));
		gap: 16px;
		margin-bottom: 20px;
	}
	.panel { margin-bottom: 0; }
	.issue-list { list-style: none; }
	.issue-item {
		padding: 6px 0;
		border-bottom: 1px solid var(--border-color);
		font-size: 14px;
	}
	.issue-item:last-child { border-bottom: none; }

	.metrics img { max-width: 100%; height: auto; border-radius: 6px; }
</style>`
}

// escapeHTML escapes special HTML characters to prevent XSS.
func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
