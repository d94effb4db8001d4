package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
	"github.com/wjct-public-media/delivery-dashboard/internal/report"
	"github.com/wjct-public-media/delivery-dashboard/internal/timeline"
)

// PageData is everything the dashboard page renders from: the laid-out
// timeline plus the derived side-panel lists.
type PageData struct {
	Timeline    *timeline.Timeline
	Summary     report.Summary
	Urgent      []domain.Issue
	Active      []domain.Issue
	Blocked     []domain.Issue
	InReview    []domain.Issue
	Done        []domain.Issue
	Today       time.Time
	LastUpdated time.Time
}

// Renderer renders responses to HTTP clients.
type Renderer interface {
	RenderDashboard(w io.Writer, data PageData) error
	RenderHealth(w io.Writer, lastUpdated time.Time) error
}

// HTMLRenderer implements Renderer with server-built HTML. All markup is
// embedded in methods, no external templates.
type HTMLRenderer struct{}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) RenderDashboard(w io.Writer, data PageData) error {
	var sb strings.Builder

	sb.WriteString(htmlHead("Delivery Dashboard", "Project timelines and issue status from the tracker"))
	sb.WriteString("<body>\n<div class=\"container\">\n")
	sb.WriteString(r.buildHeader(data))
	sb.WriteString(r.buildSummaryCards(data.Summary))
	sb.WriteString(r.buildTimeline(data.Timeline))
	sb.WriteString(r.buildIssuePanels(data))
	sb.WriteString(r.buildMetricsSection())
	sb.WriteString("</div>\n")
	sb.WriteString(viewScript())
	sb.WriteString("</body>\n</html>")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *HTMLRenderer) RenderHealth(w io.Writer, lastUpdated time.Time) error {
	return json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"lastUpdated": lastUpdated,
	})
}

// buildHeader renders the title bar with the refresh button and the
// zoom and label-width controls.
func (r *HTMLRenderer) buildHeader(data PageData) string {
	var sb strings.Builder

	sb.WriteString(`<header class="topbar">
	<div>
		<h1>Delivery Dashboard</h1>
		<p class="meta-text">Last updated: `)
	if data.LastUpdated.IsZero() {
		sb.WriteString("never")
	} else {
		sb.WriteString(escapeHTML(data.LastUpdated.Format("Jan 2 15:04:05")))
	}
	sb.WriteString(`</p>
	</div>
	<div class="controls">
		<label class="control-label">Range
			<select id="range-select" onchange="setRange(this.value)">`)

	selected := 0
	if data.Timeline != nil {
		selected = data.Timeline.RangeMonths
	}
	sb.WriteString(rangeOption(0, "Auto", selected == 0))
	for _, m := range []int{1, 3, 6, 12, 24, 36} {
		sb.WriteString(rangeOption(m, fmt.Sprintf("%d mo", m), selected == m))
	}
	sb.WriteString(`</select>
		</label>
		<button class="btn" onclick="zoomBy(-250)" title="Zoom in">+</button>
		<button class="btn" onclick="zoomBy(250)" title="Zoom out">−</button>
		<label class="control-label">Labels
			<input id="label-width" type="range" min="120" max="1000" step="20" value="`)
	if data.Timeline != nil {
		sb.WriteString(fmt.Sprintf("%d", data.Timeline.LabelWidthPx))
	} else {
		sb.WriteString(fmt.Sprintf("%d", timeline.DefaultLabelWidthPx))
	}
	sb.WriteString(`" onchange="setLabelWidth(this.value)">
		</label>
		<button class="btn btn-primary" onclick="refreshData(this)">Refresh</button>
	</div>
</header>
`)
	return sb.String()
}

func rangeOption(months int, label string, selected bool) string {
	sel := ""
	if selected {
		sel = " selected"
	}
	return fmt.Sprintf(`<option value="%d"%s>%s</option>`, months, sel, escapeHTML(label))
}

func (r *HTMLRenderer) buildMetricsSection() string {
	return `<section class="card metrics">
	<h2>Issues by Status</h2>
	<img src="/api/metrics.svg" alt="Issue counts by workflow status" width="720" height="260">
</section>
`
}

// viewScript wires the page controls to the view-state API. Every
// control POSTs its change and reloads; the server re-renders from the
// updated state.
func viewScript() string {
	return `<script>
	async function postView(path, body) {
		await fetch(path, {
			method: 'POST',
			headers: {'Content-Type': 'application/json'},
			body: JSON.stringify(body)
		});
		location.reload();
	}

	function toggleRow(kind, key) { postView('/api/view/toggle', {kind: kind, key: key}); }
	function zoomBy(delta) { postView('/api/view/zoom', {delta: delta}); }
	function setRange(months) { postView('/api/view/range', {months: parseInt(months, 10)}); }
	function setLabelWidth(px) { postView('/api/view/label-width', {px: parseInt(px, 10)}); }

	function refreshData(btn) {
		btn.disabled = true;
		btn.textContent = 'Refreshing...';
		fetch('/api/refresh', {method: 'POST'}).then(function() {
			setTimeout(function() { location.reload(); }, 1200);
		});
	}

	// Trackpad pinch and ctrl+wheel zoom over the timeline canvas;
	// deltas are batched so one gesture becomes one request.
	(function() {
		const canvas = document.getElementById('timeline-canvas');
		if (!canvas) return;
		let pending = 0;
		let timer = null;
		canvas.addEventListener('wheel', function(e) {
			if (!e.ctrlKey) return;
			e.preventDefault();
			pending += e.deltaY;
			if (timer) clearTimeout(timer);
			timer = setTimeout(function() {
				const delta = pending;
				pending = 0;
				zoomBy(delta);
			}, 200);
		}, {passive: false});
	})();
</script>
`
}
