// Package config loads and saves the persistent grid settings stored at
// <profileDir>/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miosa/osa-grid/table"
)

// Config holds the settings a run starts from. Command-line flags override
// individual fields.
type Config struct {
	// Theme names a style theme; "auto" picks dark or light from the
	// terminal background.
	Theme       string   `yaml:"theme,omitempty"`
	Source      string   `yaml:"source"`
	Count       int      `yaml:"count"`
	Seed        int64    `yaml:"seed"`
	Overscan    int      `yaml:"overscan"`
	RowHeight   int      `yaml:"row_height"`
	RepoPath    string   `yaml:"repo_path,omitempty"`
	CommitLimit int      `yaml:"commit_limit"`
	LogLevel    string   `yaml:"log_level"`
	// Sort lists initial sorts as "column" or "column:desc", highest priority
	// first.
	Sort []string `yaml:"sort,omitempty"`
}

const (
	filename = "config.yaml"
	dirName  = ".osa-grid"
)

// DefaultDir returns ~/.osa-grid.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Load reads <profileDir>/config.yaml. A missing file yields the defaults
// and no error; an unreadable or malformed file yields the defaults and the
// error so the caller can report it.
func Load(profileDir string) (Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaults(), fmt.Errorf("parsing %s: %w", filename, err)
	}
	return cfg.Normalize(), nil
}

// Save writes cfg to <profileDir>/config.yaml, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Normalize replaces out-of-range values with their defaults.
func (c Config) Normalize() Config {
	d := defaults()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.Count < 0 {
		c.Count = 0
	}
	if c.Overscan < 0 {
		c.Overscan = 0
	}
	if c.RowHeight < 1 {
		c.RowHeight = 1
	}
	if c.CommitLimit <= 0 {
		c.CommitLimit = d.CommitLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// Sorting parses Sort. Malformed entries are skipped; unknown columns are
// dropped later by the table.
func (c Config) Sorting() table.SortingState {
	var s table.SortingState
	for _, e := range c.Sort {
		id, dir, _ := strings.Cut(strings.TrimSpace(e), ":")
		if id == "" {
			continue
		}
		switch strings.ToLower(dir) {
		case "", "asc":
			s = append(s, table.ColumnSort{ID: id})
		case "desc":
			s = append(s, table.ColumnSort{ID: id, Desc: true})
		}
	}
	return s
}

func defaults() Config {
	return Config{
		Theme:       "auto",
		Source:      "people",
		Count:       50_000,
		Seed:        1,
		Overscan:    10,
		RowHeight:   1,
		CommitLimit: 5000,
		LogLevel:    "info",
	}
}
