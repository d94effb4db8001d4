package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
)

// Config holds application configuration for both the dashboard server
// and the credential proxy.
type Config struct {
	Port int

	// Tracker API configuration. Endpoint is either the tracker's GraphQL
	// URL (direct mode, APIKey required) or a deployed proxy URL (the
	// proxy injects the credential).
	Endpoint string
	APIKey   string

	// Issue query filter: by team, or by assignee email when TeamID is
	// empty and AssigneeEmail is set.
	TeamID        string
	AssigneeEmail string

	// PollInterval is the periodic refresh interval.
	PollInterval time.Duration

	// StatusMapPath points at an optional YAML file mapping project
	// status names to categories. Empty disables the explicit mapping.
	StatusMapPath string

	// Proxy configuration.
	ProxyPort      int
	UpstreamURL    string
	AllowedOrigins []string
}

// Load loads configuration from the environment, reading a .env file
// first if one is present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments configure the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envInt("PORT", 8080),
		Endpoint:      envOrDefault("LINEAR_ENDPOINT", "https://api.linear.app/graphql"),
		APIKey:        os.Getenv("LINEAR_API_KEY"),
		TeamID:        os.Getenv("LINEAR_TEAM_ID"),
		AssigneeEmail: os.Getenv("LINEAR_ASSIGNEE_EMAIL"),
		PollInterval:  envDuration("POLL_INTERVAL", 10*time.Minute),
		StatusMapPath: os.Getenv("STATUS_MAP_PATH"),
		ProxyPort:     envInt("PROXY_PORT", 8787),
		UpstreamURL:   envOrDefault("UPSTREAM_URL", "https://api.linear.app/graphql"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// LoadStatusMap reads a YAML status-name to category mapping:
//
//	statuses:
//	  "Completed": completed
//	  "On Hold":   paused
//
// Unknown category values are rejected so drift in the file is caught at
// load time rather than silently misclassifying bars.
func LoadStatusMap(path string) (map[string]domain.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read status map: %w", err)
	}

	var file struct {
		Statuses map[string]string `yaml:"statuses"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse status map: %w", err)
	}

	valid := map[string]domain.Category{
		"completed": domain.CategoryCompleted,
		"cancelled": domain.CategoryCancelled,
		"active":    domain.CategoryActive,
		"paused":    domain.CategoryPaused,
		"backlog":   domain.CategoryBacklog,
	}

	mapping := make(map[string]domain.Category, len(file.Statuses))
	for name, cat := range file.Statuses {
		c, ok := valid[strings.ToLower(cat)]
		if !ok {
			return nil, fmt.Errorf("status map: unknown category %q for status %q", cat, name)
		}
		mapping[name] = c
	}
	return mapping, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return defaultValue
}
