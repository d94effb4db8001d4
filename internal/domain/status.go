package domain

import "strings"

// Category is the dashboard-level classification of a project status.
// It drives bar styling and the active/neutral/done ordering on the
// timeline.
type Category string

const (
	CategoryCompleted Category = "completed"
	CategoryCancelled Category = "cancelled"
	CategoryActive    Category = "active"
	CategoryPaused    Category = "paused"
	CategoryBacklog   Category = "backlog"
)

// Classifier maps free-text status names to categories. Status names are
// an external contract that can drift, so the primary mechanism is an
// explicit mapping maintained as configuration; substring matching
// remains only as a degradation path for unmapped names.
type Classifier struct {
	byName map[string]Category // keys lowercased
}

// NewClassifier builds a classifier from an explicit name->category map.
// A nil or empty map leaves only the substring fallback.
func NewClassifier(mapping map[string]Category) *Classifier {
	byName := make(map[string]Category, len(mapping))
	for name, cat := range mapping {
		byName[strings.ToLower(name)] = cat
	}
	return &Classifier{byName: byName}
}

// Categorize classifies a status name, consulting the configured mapping
// first and falling back to substring heuristics for unmapped names.
func (c *Classifier) Categorize(name string) Category {
	if cat, ok := c.byName[strings.ToLower(name)]; ok {
		return cat
	}
	return fallbackCategory(name)
}

// fallbackCategory keeps the original substring heuristics for status
// names absent from the configured mapping.
func fallbackCategory(name string) Category {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "complet"):
		return CategoryCompleted
	case strings.Contains(n, "cancel"):
		return CategoryCancelled
	case strings.Contains(n, "progress"), strings.Contains(n, "active"), strings.Contains(n, "started"):
		return CategoryActive
	case strings.Contains(n, "hold"), strings.Contains(n, "pause"):
		return CategoryPaused
	default:
		return CategoryBacklog
	}
}

// IsFinished reports whether the category means no further work is
// expected; finished projects collapse behind accordions and are exempt
// from overdue styling.
func (cat Category) IsFinished() bool {
	return cat == CategoryCompleted || cat == CategoryCancelled
}
