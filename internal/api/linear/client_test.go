package linear

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/wjct-public-media/delivery-dashboard/internal/api"
)

// mockHTTPClient is a test double for api.HTTPClient.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(httpClient api.HTTPClient) *Client {
	return NewClient(api.ClientConfig{
		Endpoint: "https://tracker.example/graphql",
		APIKey:   "lin_api_key",
		TeamID:   "team-1",
	}, httpClient, zap.NewNop())
}

func TestFetchIssuesSendsAuthorizedRequest(t *testing.T) {
	// Arrange
	var captured *http.Request
	var sentBody string
	client := newTestClient(&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		captured = req
		b, _ := io.ReadAll(req.Body)
		sentBody = string(b)
		return jsonResponse(http.StatusOK, `{"data":{"issues":{"nodes":[]}}}`), nil
	}})

	// Act
	_, err := client.FetchIssues(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Header.Get("Authorization") != "lin_api_key" {
		t.Errorf("expected API key header, got %q", captured.Header.Get("Authorization"))
	}
	if captured.Header.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type: %q", captured.Header.Get("Content-Type"))
	}
	if !strings.Contains(sentBody, `team: { id: { eq: \"team-1\" } }`) {
		t.Errorf("expected team filter in query, got %s", sentBody)
	}
}

func TestFetchIssuesAssigneeFilterWithoutTeam(t *testing.T) {
	// Arrange: no team id, so the assignee email filter applies.
	var sentBody string
	client := NewClient(api.ClientConfig{
		Endpoint:      "https://tracker.example/graphql",
		AssigneeEmail: "reporter@station.example",
	}, &mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(req.Body)
		sentBody = string(b)
		return jsonResponse(http.StatusOK, `{"data":{"issues":{"nodes":[]}}}`), nil
	}}, zap.NewNop())

	// Act
	if _, err := client.FetchIssues(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if !strings.Contains(sentBody, `assignee: { email: { eq: \"reporter@station.example\" } }`) {
		t.Errorf("expected assignee filter, got %s", sentBody)
	}
}

func TestFetchIssuesOmitsEmptyAuthorization(t *testing.T) {
	// Proxy mode: the deployed relay injects the credential, the client
	// must not send an empty header.
	var captured *http.Request
	client := NewClient(api.ClientConfig{Endpoint: "https://proxy.example"},
		&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
			captured = req
			return jsonResponse(http.StatusOK, `{"data":{"issues":{"nodes":[]}}}`), nil
		}}, zap.NewNop())

	if _, err := client.FetchIssues(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := captured.Header["Authorization"]; ok {
		t.Error("empty API key must not produce an Authorization header")
	}
}

func TestFetchIssuesConvertsNodes(t *testing.T) {
	// Arrange
	body := `{"data":{"issues":{"nodes":[
		{"id":"x1","identifier":"ENG-1","title":"Ship it","state":{"name":"In Progress","type":"started"},
		 "priority":1,"priorityLabel":"Urgent","dueDate":"2026-09-10",
		 "project":{"id":"p1","name":"CMS"},"url":"https://tracker/x1","assignee":{"name":"Sam"}},
		{"id":"x2","identifier":"ENG-2","title":"No extras","state":{"name":"Todo","type":"unstarted"},
		 "priority":0,"priorityLabel":"No priority","dueDate":"garbage"}
	]}}}`
	client := newTestClient(&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	}})

	// Act
	issues, err := client.FetchIssues(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}

	first := issues[0]
	if first.Identifier != "ENG-1" || first.State.Name != "In Progress" || first.Assignee != "Sam" {
		t.Errorf("unexpected conversion: %+v", first)
	}
	if first.Project == nil || first.Project.ID != "p1" {
		t.Errorf("expected project ref, got %+v", first.Project)
	}
	want := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.Local)
	if first.DueDate == nil || !first.DueDate.Equal(want) {
		t.Errorf("expected due date %v, got %v", want, first.DueDate)
	}

	// The malformed date is dropped, not fatal.
	second := issues[1]
	if second.DueDate != nil {
		t.Errorf("malformed date should be dropped, got %v", second.DueDate)
	}
	if second.Project != nil || second.Assignee != "" {
		t.Errorf("missing optionals should stay zero: %+v", second)
	}
}

func TestFetchProjectsConvertsNodes(t *testing.T) {
	// Arrange
	body := `{"data":{"projects":{"nodes":[
		{"id":"p1","name":"CMS","color":"#6644ff","startDate":"2026-08-01","targetDate":"2026-10-31",
		 "url":"https://tracker/p1","status":{"name":"In Progress"},
		 "initiatives":{"nodes":[{"id":"i1","name":"Digital","targetDate":"2026-11-15"}]}}
	]}}}`
	client := newTestClient(&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	}})

	// Act
	projects, err := client.FetchProjects(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.Name != "CMS" || p.Status.Name != "In Progress" || p.Color != "#6644ff" {
		t.Errorf("unexpected conversion: %+v", p)
	}
	if p.StartDate == nil || p.TargetDate == nil {
		t.Fatal("expected both dates parsed")
	}
	if len(p.Initiatives) != 1 || p.Initiatives[0].ID != "i1" {
		t.Fatalf("expected initiative ref, got %+v", p.Initiatives)
	}
	if p.Initiatives[0].TargetDate == nil {
		t.Error("expected initiative target date parsed")
	}
}

func TestQueryErrorsWithoutDataFail(t *testing.T) {
	client := newTestClient(&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"errors":[{"message":"rate limited"}]}`), nil
	}})

	if _, err := client.FetchIssues(context.Background()); err == nil {
		t.Error("expected error when the response carries only errors")
	}
}

func TestQueryErrorsWithPartialDataProceed(t *testing.T) {
	// Arrange: errors alongside usable data.
	body := `{"data":{"issues":{"nodes":[{"id":"x1","identifier":"ENG-1","title":"T","state":{"name":"Todo","type":"unstarted"}}]}},
		"errors":[{"message":"field deprecated"}]}`
	client := newTestClient(&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	}})

	// Act
	issues, err := client.FetchIssues(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("partial data should be used, got error: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("expected 1 issue from partial data, got %d", len(issues))
	}
}

func TestQueryNon200Fails(t *testing.T) {
	client := newTestClient(&mockHTTPClient{doFunc: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error":"bad key"}`), nil
	}})

	_, err := client.FetchIssues(context.Background())
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}
