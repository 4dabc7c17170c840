package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/miosa/osa-grid/table"
)

// DefaultCommitLimit caps the log when no limit is configured.
const DefaultCommitLimit = 5000

var errStopLog = errors.New("stop")

// Commit is one entry of the commit log.
type Commit struct {
	Hash    string
	Author  string
	Subject string
	When    time.Time
}

// Commits walks the log from HEAD of the repository containing path, newest
// first, up to limit entries. A repository without commits yields an empty
// log.
func Commits(ctx context.Context, path string, limit int) ([]Commit, error) {
	if path == "" {
		path = "."
	}
	if limit <= 0 {
		limit = DefaultCommitLimit
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repo %s: %w", path, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return []Commit{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	out := make([]Commit, 0, min(limit, 256))
	err = iter.ForEach(func(c *object.Commit) error {
		if len(out) >= limit {
			return errStopLog
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		out = append(out, Commit{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Subject: strings.TrimSpace(subject),
			When:    c.Author.When,
		})
		return nil
	})
	if err != nil && !errors.Is(err, errStopLog) {
		return nil, fmt.Errorf("walking log: %w", err)
	}
	return out, nil
}

// CommitColumns are the columns of the commit table.
func CommitColumns() []table.Column[Commit] {
	return []table.Column[Commit]{
		{
			ID: "hash", Header: "Hash", Width: 8,
			Cell: func(c Commit) string { return c.Hash[:min(7, len(c.Hash))] },
		},
		{
			ID: "when", Header: "Date", Width: 16,
			Cell: func(c Commit) string { return c.When.Format("2006-01-02 15:04") },
			Compare: func(a, b Commit) int {
				return a.When.Compare(b.When)
			},
			DescFirst: true,
		},
		{
			ID: "author", Header: "Author", Width: 18,
			Cell:    func(c Commit) string { return c.Author },
			Compare: table.CompareFold(func(c Commit) string { return c.Author }),
		},
		{
			ID: "subject", Header: "Subject",
			Cell:    func(c Commit) string { return c.Subject },
			Compare: table.CompareFold(func(c Commit) string { return c.Subject }),
		},
	}
}

// CommitTable wraps commits in a table keyed by hash.
func CommitTable(commits []Commit, sorting table.SortingState) *table.Table[Commit] {
	return table.New(commits, CommitColumns(),
		table.WithRowID(func(c Commit, _ int) string { return c.Hash }),
		table.WithSorting[Commit](sorting),
	)
}
