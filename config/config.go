package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ConfigError reports a missing or malformed configuration value. It is
// raised before any external call happens.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// Config is the root configuration structure. It is read once at startup
// and passed down unchanged.
type Config struct {
	Notion NotionConfig `json:"notion"`
	Repo   RepoConfig   `json:"repo"`
	Digest DigestConfig `json:"digest"`
}

// NotionConfig holds document-store credentials and target.
type NotionConfig struct {
	Token      string `json:"-"` // env or flag only, never the config file
	DatabaseID string `json:"databaseId"`
}

// RepoConfig identifies the repository being digested.
type RepoConfig struct {
	Path        string `json:"path"`
	Remote      string `json:"remote"`
	Branch      string `json:"branch"`      // optional override; empty means resolve
	DisplayName string `json:"displayName"` // "owner/name", enables commit links
}

// DigestConfig holds summarization options.
type DigestConfig struct {
	Timezone     string       `json:"timezone"`
	Mode         string       `json:"mode"` // patch, excerpt, numstat
	MaxDiffLines int          `json:"maxDiffLines"`
	Filters      FilterConfig `json:"filters"`
}

// FilterConfig holds changed-path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Path:   ".",
			Remote: "origin",
		},
		Digest: DigestConfig{
			Timezone:     "Asia/Tokyo",
			Mode:         "patch",
			MaxDiffLines: 3,
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults. An
// empty path tries the default locations; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		candidates := []string{".daily-changelog.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".daily-changelog.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// databaseIDPattern is a loose shape check: Notion database ids are 32 hex
// digits, with or without UUID hyphenation.
var databaseIDPattern = regexp.MustCompile(`^[0-9a-fA-F-]{32,36}$`)

// ValidateNotion checks the credentials needed to publish. Called before
// any network traffic.
func (c *Config) ValidateNotion() error {
	if c.Notion.Token == "" {
		return &ConfigError{Field: "notion token", Reason: "required (set NOTION_API_KEY)"}
	}
	id := c.Notion.DatabaseID
	if id == "" {
		return &ConfigError{Field: "database id", Reason: "required (set NOTION_DATABASE_ID)"}
	}
	if !databaseIDPattern.MatchString(id) || hexDigits(id) != 32 {
		return &ConfigError{Field: "database id", Reason: fmt.Sprintf("%q does not look like a Notion database id", id)}
	}
	return nil
}

// Validate checks the digest settings that do not depend on publishing.
func (c *Config) Validate() error {
	if c.Repo.Path == "" {
		return &ConfigError{Field: "repo path", Reason: "required"}
	}
	if c.Digest.MaxDiffLines < 0 {
		return &ConfigError{Field: "maxDiffLines", Reason: "must not be negative"}
	}
	return nil
}

func hexDigits(s string) int {
	n := 0
	for _, r := range s {
		if r != '-' {
			n++
		}
	}
	return n
}
