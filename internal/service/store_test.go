package service

import (
	"testing"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

func TestStoreReplaceAndSnapshot(t *testing.T) {
	// Arrange
	s := NewStore()

	// Act
	s.ReplaceIssues(1, []domain.Issue{{ID: "x1"}})
	s.ReplaceProjects(1, []domain.Project{
		{ID: "p1", Initiatives: []domain.InitiativeRef{{ID: "i1", Name: "News"}}},
	})
	snap := s.Snapshot()

	// Assert: initiatives are re-derived from the project collection.
	if len(snap.Issues) != 1 || len(snap.Projects) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d issues, %d projects", len(snap.Issues), len(snap.Projects))
	}
	if len(snap.Initiatives) != 1 || snap.Initiatives[0].ID != "i1" {
		t.Errorf("expected derived initiative i1, got %+v", snap.Initiatives)
	}
}

func TestStoreRejectsStaleGenerations(t *testing.T) {
	// Arrange
	s := NewStore()
	s.ReplaceIssues(2, []domain.Issue{{ID: "new"}})

	// Act: a slow fetch from an older cycle arrives late.
	applied := s.ReplaceIssues(1, []domain.Issue{{ID: "old"}})

	// Assert
	if applied {
		t.Error("stale generation must be discarded")
	}
	if snap := s.Snapshot(); snap.Issues[0].ID != "new" {
		t.Errorf("expected newer data retained, got %s", snap.Issues[0].ID)
	}

	// Same generation twice is also stale.
	if s.ReplaceIssues(2, []domain.Issue{{ID: "dup"}}) {
		t.Error("equal generation must be discarded")
	}
}

func TestStoreSidesAreIndependent(t *testing.T) {
	// Issue and project generations advance separately, so one failing
	// side never blocks the other.
	s := NewStore()

	if !s.ReplaceIssues(3, []domain.Issue{{ID: "x"}}) {
		t.Error("issue replace should apply")
	}
	if !s.ReplaceProjects(1, []domain.Project{{ID: "p"}}) {
		t.Error("project replace should apply despite lower generation on the other side")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	// Arrange
	s := NewStore()
	s.ReplaceIssues(1, []domain.Issue{{ID: "x1", Title: "original"}})

	// Act: mutate the snapshot.
	snap := s.Snapshot()
	snap.Issues[0].Title = "mutated"

	// Assert
	if s.Snapshot().Issues[0].Title != "original" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestStampUpdated(t *testing.T) {
	s := NewStore()
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	s.StampUpdated(now)

	if !s.Snapshot().LastUpdated.Equal(now) {
		t.Errorf("expected %v, got %v", now, s.Snapshot().LastUpdated)
	}
}
