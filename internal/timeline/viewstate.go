package timeline

// Label column width bounds in pixels.
const (
	MinLabelWidthPx = 120
	MaxLabelWidthPx = 1000

	DefaultLabelWidthPx = 240
)

// ViewState is the interaction state the timeline is rendered from. It is
// explicit and serializable so rendering stays a pure function of
// (snapshot, view state, today); it survives data refreshes and is only
// mutated by toggle operations.
type ViewState struct {
	// RangeMonths is the explicit range width in months; 0 means
	// auto-fit to the project dates.
	RangeMonths int `json:"rangeMonths"`

	// LabelWidthPx is the persisted label column width.
	LabelWidthPx int `json:"labelWidthPx"`

	// InitiativeAccordions holds the expanded per-group completed
	// accordions, keyed by group label.
	InitiativeAccordions map[string]bool `json:"initiativeAccordions"`

	// ExpandedProjects holds the expanded project rows, keyed by id.
	ExpandedProjects map[string]bool `json:"expandedProjects"`

	// ProjectAccordions holds the expanded nested completed-issue
	// accordions, keyed by project id.
	ProjectAccordions map[string]bool `json:"projectAccordions"`
}

// NewViewState returns the default view state: auto range, default label
// width, everything collapsed.
func NewViewState() *ViewState {
	return &ViewState{
		LabelWidthPx:         DefaultLabelWidthPx,
		InitiativeAccordions: make(map[string]bool),
		ExpandedProjects:     make(map[string]bool),
		ProjectAccordions:    make(map[string]bool),
	}
}

// Clone returns a deep copy.
func (v *ViewState) Clone() *ViewState {
	c := &ViewState{
		RangeMonths:          v.RangeMonths,
		LabelWidthPx:         v.LabelWidthPx,
		InitiativeAccordions: make(map[string]bool, len(v.InitiativeAccordions)),
		ExpandedProjects:     make(map[string]bool, len(v.ExpandedProjects)),
		ProjectAccordions:    make(map[string]bool, len(v.ProjectAccordions)),
	}
	for k, val := range v.InitiativeAccordions {
		c.InitiativeAccordions[k] = val
	}
	for k, val := range v.ExpandedProjects {
		c.ExpandedProjects[k] = val
	}
	for k, val := range v.ProjectAccordions {
		c.ProjectAccordions[k] = val
	}
	return c
}

// ToggleInitiativeAccordion flips the completed accordion for a group.
func (v *ViewState) ToggleInitiativeAccordion(groupLabel string) {
	toggle(v.InitiativeAccordions, groupLabel)
}

// ToggleProject flips a project row's expansion.
func (v *ViewState) ToggleProject(projectID string) {
	toggle(v.ExpandedProjects, projectID)
}

// ToggleProjectAccordion flips a project's nested completed-issue accordion.
func (v *ViewState) ToggleProjectAccordion(projectID string) {
	toggle(v.ProjectAccordions, projectID)
}

// SetLabelWidth stores a label column width, clamped to the allowed range.
func (v *ViewState) SetLabelWidth(px int) {
	if px < MinLabelWidthPx {
		px = MinLabelWidthPx
	}
	if px > MaxLabelWidthPx {
		px = MaxLabelWidthPx
	}
	v.LabelWidthPx = px
}

// SetRangeMonths stores an explicit range width. Zero resets to auto;
// other values clamp to the zoom bounds.
func (v *ViewState) SetRangeMonths(months int) {
	if months <= 0 {
		v.RangeMonths = 0
		return
	}
	if months < MinZoomMonths {
		months = MinZoomMonths
	}
	if months > MaxZoomMonths {
		months = MaxZoomMonths
	}
	v.RangeMonths = months
}

// toggle flips membership in a set, pruning cleared keys so repeated
// toggling does not grow the map.
func toggle(set map[string]bool, key string) {
	if set[key] {
		delete(set, key)
		return
	}
	set[key] = true
}
