package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	// Arrange: a clean environment.
	for _, key := range []string{
		"PORT", "LINEAR_ENDPOINT", "LINEAR_API_KEY", "LINEAR_TEAM_ID",
		"LINEAR_ASSIGNEE_EMAIL", "POLL_INTERVAL", "STATUS_MAP_PATH",
		"PROXY_PORT", "UPSTREAM_URL", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.ProxyPort != 8787 {
		t.Errorf("unexpected ports: %d, %d", cfg.Port, cfg.ProxyPort)
	}
	if cfg.Endpoint != "https://api.linear.app/graphql" {
		t.Errorf("unexpected endpoint: %s", cfg.Endpoint)
	}
	if cfg.PollInterval != 10*time.Minute {
		t.Errorf("unexpected poll interval: %v", cfg.PollInterval)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("expected no origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadOverridesAndOriginList(t *testing.T) {
	// Arrange
	t.Setenv("PORT", "9000")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("LINEAR_TEAM_ID", "team-1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.PollInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("POLL_INTERVAL", "eleven")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.PollInterval != 10*time.Minute {
		t.Errorf("malformed values should fall back to defaults, got %d / %v", cfg.Port, cfg.PollInterval)
	}
}

func TestLoadStatusMap(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "statuses.yaml")
	content := `statuses:
  "Shipped": completed
  "On Hold": paused
  "Iceboxed": cancelled
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Act
	mapping, err := LoadStatusMap(path)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapping) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(mapping))
	}
	if mapping["Shipped"] != domain.CategoryCompleted || mapping["On Hold"] != domain.CategoryPaused {
		t.Errorf("unexpected mapping: %v", mapping)
	}
}

func TestLoadStatusMapRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statuses.yaml")
	if err := os.WriteFile(path, []byte("statuses:\n  \"Shipped\": finished\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadStatusMap(path); err == nil {
		t.Error("expected error for unknown category value")
	}
}

func TestLoadStatusMapMissingFile(t *testing.T) {
	if _, err := LoadStatusMap(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
