package api

import (
	"context"
	"net/http"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// Client defines the interface for tracker API clients. Consumers depend
// on this interface, not on a concrete implementation, so the fetch
// pipeline can be exercised with test doubles.
type Client interface {
	// FetchIssues returns the current issue snapshot for the configured
	// team or assignee filter.
	FetchIssues(ctx context.Context) ([]domain.Issue, error)

	// FetchProjects returns the current project snapshot.
	FetchProjects(ctx context.Context) ([]domain.Project, error)
}

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds common configuration for API clients. Endpoint may
// be the tracker's GraphQL URL or a credential-injecting proxy; APIKey is
// empty in the proxy case.
type ClientConfig struct {
	Endpoint      string
	APIKey        string
	TeamID        string
	AssigneeEmail string
}
