// Package source builds the record sets the grid browses: generated people,
// the live process table and a repository's commit log. Each loader returns
// a table.Model with row ids that stay attached to their record across
// sorts.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/miosa/osa-grid/table"
)

// ErrUnknownSource is returned by Load for a name it does not recognise.
var ErrUnknownSource = errors.New("unknown source")

// Names of the built-in sources.
const (
	NamePeople    = "people"
	NameProcesses = "processes"
	NameCommits   = "commits"
)

// Spec selects and parameterises a source.
type Spec struct {
	Name string
	// Count and Seed drive the people generator.
	Count int
	Seed  int64
	// RepoPath and CommitLimit drive the commit log.
	RepoPath    string
	CommitLimit int
	// Sorting is applied once the table is built.
	Sorting table.SortingState
}

// Names lists the sources Load accepts.
func Names() []string {
	return []string{NamePeople, NameProcesses, NameCommits}
}

// Load builds the table for spec.Name.
func Load(ctx context.Context, spec Spec) (table.Model, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Name)) {
	case NamePeople, "":
		return PeopleTable(People(spec.Count, spec.Seed), spec.Sorting), nil
	case NameProcesses:
		procs, err := Processes(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading processes: %w", err)
		}
		return ProcessTable(procs, spec.Sorting), nil
	case NameCommits:
		commits, err := Commits(ctx, spec.RepoPath, spec.CommitLimit)
		if err != nil {
			return nil, fmt.Errorf("loading commits: %w", err)
		}
		return CommitTable(commits, spec.Sorting), nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownSource, spec.Name, strings.Join(Names(), ", "))
	}
}
