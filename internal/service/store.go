package service

import (
	"sync"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// Snapshot is an immutable view of the data the dashboard renders from.
type Snapshot struct {
	Issues      []domain.Issue
	Projects    []domain.Project
	Initiatives []domain.Initiative
	LastUpdated time.Time
}

// Store holds the current issue and project collections. Each side is
// replaced wholesale by a successful fetch; a failed fetch leaves its
// side at the last known value. Replacements carry a fetch generation so
// a slow, superseded response cannot clobber a newer one.
type Store struct {
	mu          sync.RWMutex
	issues      []domain.Issue
	projects    []domain.Project
	initiatives []domain.Initiative
	lastUpdated time.Time

	issueGen   uint64
	projectGen uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a consistent copy of the current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Issues:      make([]domain.Issue, len(s.issues)),
		Projects:    make([]domain.Project, len(s.projects)),
		Initiatives: make([]domain.Initiative, len(s.initiatives)),
		LastUpdated: s.lastUpdated,
	}
	copy(snap.Issues, s.issues)
	copy(snap.Projects, s.projects)
	copy(snap.Initiatives, s.initiatives)
	return snap
}

// ReplaceIssues installs a new issue collection if gen is newer than the
// last applied issue generation. Returns false when the result was stale
// and discarded.
func (s *Store) ReplaceIssues(gen uint64, issues []domain.Issue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.issueGen {
		return false
	}
	s.issueGen = gen
	s.issues = issues
	return true
}

// ReplaceProjects installs a new project collection and re-derives the
// initiative list from it. Stale generations are discarded.
func (s *Store) ReplaceProjects(gen uint64, projects []domain.Project) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.projectGen {
		return false
	}
	s.projectGen = gen
	s.projects = projects
	s.initiatives = domain.DeriveInitiatives(projects)
	return true
}

// StampUpdated records the completion time of a fetch cycle.
func (s *Store) StampUpdated(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdated = t
}
