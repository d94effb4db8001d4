package timeline

import (
	"sort"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// Group labels for the bucket of projects without an initiative.
const (
	unassignedWithInitiatives = "Other Projects"
	unassignedAlone           = "Projects"
)

// Group is one initiative heading with its member projects, ordered
// active first, neutral second, finished last.
type Group struct {
	// Label doubles as the accordion key for the group.
	Label      string
	Initiative *domain.Initiative // nil for the unassigned bucket
	Projects   []domain.Project
}

// BuildGroups assigns every project to the group of the first initiative
// it lists, creating groups on the fly for initiatives only reachable
// through a project. Projects without an initiative land in a trailing
// unassigned bucket. The function is deterministic: groups keep the
// initiative encounter order and project ties keep encounter order.
func BuildGroups(projects []domain.Project, initiatives []domain.Initiative, classifier *domain.Classifier) []Group {
	index := make(map[string]int, len(initiatives))
	groups := make([]Group, 0, len(initiatives)+1)
	for _, init := range initiatives {
		init := init
		index[init.ID] = len(groups)
		groups = append(groups, Group{Label: init.Name, Initiative: &init})
	}

	var unassigned []domain.Project
	for _, p := range projects {
		if len(p.Initiatives) == 0 {
			unassigned = append(unassigned, p)
			continue
		}
		// A project listing several initiatives belongs to the first
		// one only; it is never duplicated across groups.
		first := p.Initiatives[0]
		i, ok := index[first.ID]
		if !ok {
			i = len(groups)
			index[first.ID] = i
			groups = append(groups, Group{
				Label:      first.Name,
				Initiative: &domain.Initiative{ID: first.ID, Name: first.Name},
			})
		}
		groups[i].Projects = append(groups[i].Projects, p)
	}

	result := groups[:0:0]
	for _, g := range groups {
		if len(g.Projects) == 0 {
			continue
		}
		sortProjects(g.Projects, classifier)
		result = append(result, g)
	}

	if len(unassigned) > 0 {
		label := unassignedAlone
		if len(result) > 0 {
			label = unassignedWithInitiatives
		}
		sortProjects(unassigned, classifier)
		result = append(result, Group{Label: label, Projects: unassigned})
	}
	return result
}

// sortProjects orders projects by their tri-level status rank: active
// work first, neutral states second, finished last. Stable, so ties keep
// encounter order.
func sortProjects(projects []domain.Project, classifier *domain.Classifier) {
	sort.SliceStable(projects, func(i, j int) bool {
		return statusOrder(projects[i], classifier) < statusOrder(projects[j], classifier)
	})
}

func statusOrder(p domain.Project, classifier *domain.Classifier) int {
	switch classifier.Categorize(p.Status.Name) {
	case domain.CategoryActive:
		return 0
	case domain.CategoryCompleted, domain.CategoryCancelled:
		return 2
	default: // backlog, paused, planned, unlabeled
		return 1
	}
}
