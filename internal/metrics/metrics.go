// Package metrics aggregates issue counts per workflow status and renders
// them as an SVG bar chart.
package metrics

import (
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// chartStatuses fixes the bucket order on the chart's x axis. Issues in
// any other status are not charted.
var chartStatuses = []string{
	domain.StateBacklog,
	domain.StateTodo,
	domain.StateInProgress,
	domain.StateActive,
	domain.StateBlocked,
	domain.StateInReview,
	domain.StateDone,
}

var barColors = map[string]string{
	domain.StateBacklog:    "#6b7280",
	domain.StateTodo:       "#94a3b8",
	domain.StateInProgress: "#3b82f6",
	domain.StateActive:     "#8b5cf6",
	domain.StateBlocked:    "#ef4444",
	domain.StateInReview:   "#f59e0b",
	domain.StateDone:       "#22c55e",
}

// Bucket is one bar of the chart.
type Bucket struct {
	Status string
	Count  int
}

// CountByStatus tallies issues into the fixed status buckets. Every
// bucket appears in the result, zero counts included, so the chart
// shape stays stable across refreshes.
func CountByStatus(issues []domain.Issue) []Bucket {
	counts := make(map[string]int, len(chartStatuses))
	for _, issue := range issues {
		counts[issue.State.Name]++
	}

	buckets := make([]Bucket, len(chartStatuses))
	for i, status := range chartStatuses {
		buckets[i] = Bucket{Status: status, Count: counts[status]}
	}
	return buckets
}

const (
	chartWidth   = 720
	chartHeight  = 260
	marginLeft   = 40
	marginRight  = 16
	marginTop    = 24
	marginBottom = 48
	barGapPx     = 14
)

// RenderChart writes a complete standalone SVG document for the buckets.
// Each call emits a fresh document; nothing is patched incrementally.
func RenderChart(w io.Writer, buckets []Bucket) {
	canvas := svg.New(w)
	canvas.Start(chartWidth, chartHeight)
	canvas.Rect(0, 0, chartWidth, chartHeight, "fill:#0f172a")

	max := 1
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}

	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom
	barW := plotW/len(buckets) - barGapPx

	for i, b := range buckets {
		x := marginLeft + i*(barW+barGapPx)
		h := b.Count * plotH / max
		y := marginTop + plotH - h

		color, ok := barColors[b.Status]
		if !ok {
			color = "#6b7280"
		}
		if h > 0 {
			canvas.Rect(x, y, barW, h, "fill:"+color)
		}
		canvas.Text(x+barW/2, y-6, strconv.Itoa(b.Count),
			"fill:#e2e8f0;font-size:12px;font-family:sans-serif;text-anchor:middle")
		canvas.Text(x+barW/2, marginTop+plotH+18, b.Status,
			"fill:#94a3b8;font-size:11px;font-family:sans-serif;text-anchor:middle")
	}

	canvas.Line(marginLeft, marginTop+plotH, chartWidth-marginRight, marginTop+plotH,
		"stroke:#334155;stroke-width:1")
	canvas.End()
}
