package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/miosa/osa-grid/table"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != "people" || cfg.Count != 50_000 || cfg.Overscan != 10 || cfg.Theme != "auto" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yml := `
source: commits
count: 200
overscan: 4
row_height: 2
repo_path: /src/repo
sort:
  - when:desc
  - author
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != "commits" || cfg.Count != 200 || cfg.Overscan != 4 || cfg.RowHeight != 2 {
		t.Errorf("fields not applied: %+v", cfg)
	}
	if cfg.RepoPath != "/src/repo" {
		t.Errorf("RepoPath = %q", cfg.RepoPath)
	}
	// Unset fields keep their defaults.
	if cfg.Theme != "auto" || cfg.CommitLimit != 5000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	want := table.SortingState{{ID: "when", Desc: true}, {ID: "author"}}
	if got := cfg.Sorting(); !slices.Equal(got, want) {
		t.Errorf("Sorting() = %+v, want %+v", got, want)
	}
}

func TestLoad_MalformedReturnsDefaultsAndError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("count: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Count != 50_000 {
		t.Errorf("Count = %d, want default", cfg.Count)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	in := defaults()
	in.Theme = "light"
	in.Sort = []string{"age:desc"}
	if err := Save(dir, in); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	out, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if out.Theme != "light" || !slices.Equal(out.Sort, in.Sort) {
		t.Errorf("round trip lost fields: %+v", out)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	c := Config{Count: -4, Overscan: -1, RowHeight: 0, CommitLimit: -2}.Normalize()
	if c.Count != 0 || c.Overscan != 0 || c.RowHeight != 1 || c.CommitLimit != 5000 {
		t.Errorf("Normalize() = %+v", c)
	}
	if c.Source != "people" || c.LogLevel != "info" {
		t.Errorf("empty strings not defaulted: %+v", c)
	}
}

func TestSorting_SkipsMalformed(t *testing.T) {
	t.Parallel()

	c := Config{Sort: []string{"", ":desc", "age:sideways", "name:ASC"}}
	want := table.SortingState{{ID: "name"}}
	if got := c.Sorting(); !slices.Equal(got, want) {
		t.Errorf("Sorting() = %+v, want %+v", got, want)
	}
}
