package domain

import "time"

// InitiativeRef is the lightweight initiative reference attached to a project.
type InitiativeRef struct {
	ID         string
	Name       string
	TargetDate *time.Time
}

// ProjectStatus is a project's status as reported by the tracker.
type ProjectStatus struct {
	Name string
}

// Project represents a collection of issues with its own date span and
// status. Like issues, projects are replaced wholesale on every fetch.
type Project struct {
	ID          string
	Name        string
	Color       string
	StartDate   *time.Time
	TargetDate  *time.Time
	URL         string
	Status      ProjectStatus
	Initiatives []InitiativeRef
}

// Initiative groups projects on the timeline. Initiatives are not fetched
// directly; they are reconstructed from the references projects carry.
type Initiative struct {
	ID         string
	Name       string
	TargetDate *time.Time
}

// DeriveInitiatives collects the unique initiative references across
// projects, in first-encounter order.
func DeriveInitiatives(projects []Project) []Initiative {
	seen := make(map[string]bool)
	var initiatives []Initiative
	for _, p := range projects {
		for _, ref := range p.Initiatives {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			initiatives = append(initiatives, Initiative{ID: ref.ID, Name: ref.Name, TargetDate: ref.TargetDate})
		}
	}
	return initiatives
}
