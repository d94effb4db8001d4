package timeline

import (
	"math"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/dates"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// Zoom bounds in months.
const (
	MinZoomMonths = 1
	MaxZoomMonths = 120
)

// Canvas scaling bounds. Zooming in (fewer months) raises the per-month
// pixel density up to the ceiling; zooming far out bottoms out at the
// floor so bars stay clickable.
const (
	minMonthWidthPx  = 48
	maxMonthWidthPx  = 220
	baseTimelinePxPM = 1440
)

// snapMonths are the "nice" range widths interactive zoom settles on.
var snapMonths = []int{1, 3, 6, 12, 24, 36}

// snapTolerance is the relative distance within which a zoomed month
// count settles on a nice value.
const snapTolerance = 0.2

// DateRange is the visible window of the timeline. Start and End are
// local-midnight dates with Start < End, and today always falls inside.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ComputeRange derives the visible window. With an explicit width the
// window opens at the first of the month before today; in auto mode it
// wraps the project dates snapped outward to month boundaries, or a
// default window when no project carries a date. Either way the range is
// widened if needed so today falls inside.
func ComputeRange(projects []domain.Project, rangeMonths int, today time.Time) DateRange {
	today = dates.Midnight(today)

	var r DateRange
	if rangeMonths > 0 {
		r.Start = dates.MonthStartOffset(today, -1)
		r.End = dates.MonthEndOffset(r.Start, rangeMonths-1)
	} else {
		r = autoRange(projects, today)
	}

	// Today must always be visible.
	if today.Before(r.Start) {
		r.Start = dates.MonthStartOffset(today, -1)
	}
	if today.After(r.End) {
		r.End = dates.MonthEndOffset(today, 1)
	}
	return r
}

func autoRange(projects []domain.Project, today time.Time) DateRange {
	var min, max time.Time
	for _, p := range projects {
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
		return DateRange{
			Start: dates.MonthStartOffset(today, -1),
			End:   dates.MonthEndOffset(today, 3),
		}
	}
	return DateRange{
		Start: dates.MonthStart(min),
		End:   dates.MonthEndOffset(max, 1),
	}
}

// PositionPercent maps a date to its horizontal position as a percentage
// of the range. Total over all inputs: dates outside the range saturate
// at 0 or 100 instead of extrapolating.
func (r DateRange) PositionPercent(d time.Time) float64 {
	total := r.End.Sub(r.Start)
	if total <= 0 {
		return 0
	}
	pct := float64(d.Sub(r.Start)) / float64(total) * 100
	return math.Max(0, math.Min(100, pct))
}

// MonthCount returns the number of calendar months the range touches.
func (r DateRange) MonthCount() int {
	return (r.End.Year()-r.Start.Year())*12 + int(r.End.Month()-r.Start.Month()) + 1
}

// MonthTick is a first-of-month marker in the timeline header.
type MonthTick struct {
	Pct   float64
	Label string
}

// MonthTicks lists the first-of-month markers covering the range.
func (r DateRange) MonthTicks() []MonthTick {
	var ticks []MonthTick
	for m := dates.MonthStart(r.Start); !m.After(r.End); m = dates.MonthStartOffset(m, 1) {
		ticks = append(ticks, MonthTick{
			Pct:   r.PositionPercent(m),
			Label: m.Format("Jan 06"),
		})
	}
	return ticks
}

// CanvasWidthPx returns the pixel width of the timeline canvas for a
// month count. Width grows with the range, but per-month density is
// clamped so zooming in increases pixel density up to a ceiling.
func CanvasWidthPx(months int) int {
	if months < 1 {
		months = 1
	}
	perMonth := baseTimelinePxPM / months
	if perMonth < minMonthWidthPx {
		perMonth = minMonthWidthPx
	}
	if perMonth > maxMonthWidthPx {
		perMonth = maxMonthWidthPx
	}
	return months * perMonth
}

// ZoomMonths applies a scroll-wheel zoom gesture to the current
// effective month count. Positive delta zooms out. The result clamps to
// [MinZoomMonths, MaxZoomMonths] and settles on a nice value when close
// enough, which keeps interactive zoom from landing on jittery
// non-round ranges.
func ZoomMonths(current float64, delta float64) int {
	factor := math.Exp(delta / 1000)
	m := current * factor

	if m < MinZoomMonths {
		m = MinZoomMonths
	}
	if m > MaxZoomMonths {
		m = MaxZoomMonths
	}

	if snapped, ok := snapTo(m); ok {
		return snapped
	}
	return int(math.Round(m))
}

// snapTo finds a nice month count within the snap tolerance of m.
func snapTo(m float64) (int, bool) {
	best, bestDist := 0, math.MaxFloat64
	for _, c := range snapMonths {
		dist := math.Abs(m-float64(c)) / float64(c)
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if bestDist <= snapTolerance {
		return best, true
	}
	return 0, false
}
