package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wjct-public-media/delivery-dashboard/internal/api"
	"github.com/wjct-public-media/delivery-dashboard/internal/dates"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// Client implements api.Client for the Linear GraphQL API. Issues and
// projects are fetched with two independent queries so a failure in one
// never blanks data from the other.
type Client struct {
	endpoint      string
	apiKey        string
	teamID        string
	assigneeEmail string
	httpClient    api.HTTPClient
	logger        *zap.Logger
}

// NewClient creates a new Linear client. The HTTP client is injected so
// tests can substitute a double.
func NewClient(config api.ClientConfig, httpClient api.HTTPClient, logger *zap.Logger) *Client {
	return &Client{
		endpoint:      config.Endpoint,
		apiKey:        config.APIKey,
		teamID:        config.TeamID,
		assigneeEmail: config.AssigneeEmail,
		httpClient:    httpClient,
		logger:        logger,
	}
}

// FetchIssues retrieves the issue snapshot, filtered by team when a team
// id is configured, otherwise by assignee email.
func (c *Client) FetchIssues(ctx context.Context) ([]domain.Issue, error) {
	var result struct {
		Issues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issues"`
	}

	if err := c.query(ctx, c.issuesQuery(), &result); err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}

	return c.convertIssues(result.Issues.Nodes), nil
}

// FetchProjects retrieves the project snapshot.
func (c *Client) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	var result struct {
		Projects struct {
			Nodes []projectNode `json:"nodes"`
		} `json:"projects"`
	}

	if err := c.query(ctx, projectsQuery, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	return c.convertProjects(result.Projects.Nodes), nil
}

func (c *Client) issuesQuery() string {
	filter := fmt.Sprintf(`filter: { team: { id: { eq: %q } } }`, c.teamID)
	if c.teamID == "" && c.assigneeEmail != "" {
		filter = fmt.Sprintf(`filter: { assignee: { email: { eq: %q } } }`, c.assigneeEmail)
	}

	return fmt.Sprintf(`query {
		issues(first: 250, %s, orderBy: updatedAt) {
			nodes {
				id identifier title
				state { name type }
				priority priorityLabel dueDate
				project { id name }
				url
				assignee { name }
			}
		}
	}`, filter)
}

const projectsQuery = `query {
	projects(first: 50, orderBy: updatedAt) {
		nodes {
			id name color startDate targetDate url
			status { name }
			initiatives { nodes { id name targetDate } }
		}
	}
}`

// query posts a GraphQL request and decodes the data payload into result.
// A response carrying both an errors array and partial data is logged as
// a warning and the partial data used as-is.
func (c *Client) query(ctx context.Context, query string, result interface{}) error {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
			return fmt.Errorf("GraphQL errors: %v", messages)
		}
		c.logger.Warn("GraphQL errors with partial data", zap.Strings("errors", messages))
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("response contained no data")
	}

	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// Linear API response types.
type issueNode struct {
	ID            string  `json:"id"`
	Identifier    string  `json:"identifier"`
	Title         string  `json:"title"`
	State         state   `json:"state"`
	Priority      int     `json:"priority"`
	PriorityLabel string  `json:"priorityLabel"`
	DueDate       *string `json:"dueDate"`
	Project       *ref    `json:"project"`
	URL           string  `json:"url"`
	Assignee      *struct {
		Name string `json:"name"`
	} `json:"assignee"`
}

type projectNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	StartDate   *string `json:"startDate"`
	TargetDate  *string `json:"targetDate"`
	URL         string  `json:"url"`
	Status      state   `json:"status"`
	Initiatives struct {
		Nodes []initiativeRef `json:"nodes"`
	} `json:"initiatives"`
}

type initiativeRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TargetDate *string `json:"targetDate"`
}

type state struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) convertIssues(nodes []issueNode) []domain.Issue {
	issues := make([]domain.Issue, len(nodes))
	for i, n := range nodes {
		issue := domain.Issue{
			ID:            n.ID,
			Identifier:    n.Identifier,
			Title:         n.Title,
			State:         domain.WorkflowState{Name: n.State.Name, Type: n.State.Type},
			Priority:      n.Priority,
			PriorityLabel: n.PriorityLabel,
			DueDate:       c.parseDate(n.DueDate, n.Identifier),
			URL:           n.URL,
		}
		if n.Project != nil {
			issue.Project = &domain.ProjectRef{ID: n.Project.ID, Name: n.Project.Name}
		}
		if n.Assignee != nil {
			issue.Assignee = n.Assignee.Name
		}
		issues[i] = issue
	}
	return issues
}

func (c *Client) convertProjects(nodes []projectNode) []domain.Project {
	projects := make([]domain.Project, len(nodes))
	for i, n := range nodes {
		project := domain.Project{
			ID:         n.ID,
			Name:       n.Name,
			Color:      n.Color,
			StartDate:  c.parseDate(n.StartDate, n.Name),
			TargetDate: c.parseDate(n.TargetDate, n.Name),
			URL:        n.URL,
			Status:     domain.ProjectStatus{Name: n.Status.Name},
		}
		for _, init := range n.Initiatives.Nodes {
			project.Initiatives = append(project.Initiatives, domain.InitiativeRef{
				ID:         init.ID,
				Name:       init.Name,
				TargetDate: c.parseDate(init.TargetDate, init.Name),
			})
		}
		projects[i] = project
	}
	return projects
}

// parseDate converts an optional YYYY-MM-DD wire date. Malformed dates
// are dropped with a warning rather than failing the whole fetch.
func (c *Client) parseDate(s *string, subject string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := dates.ParseLocalDate(*s)
	if err != nil {
		c.logger.Warn("dropping malformed date", zap.String("subject", subject), zap.Error(err))
		return nil
	}
	return &t
}
