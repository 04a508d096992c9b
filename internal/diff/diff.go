// Package diff computes per-commit file deltas against the first parent,
// under two interchangeable accuracy/speed tiers.
package diff

import (
	"fmt"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// File statuses
const (
	StatusAdded    = "added"
	StatusModified = "modified"
	StatusRemoved  = "removed"
	StatusUnknown  = "unknown"
)

// FileDelta is one file's change within one commit
type FileDelta struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Stats is the rolled-up line delta of a commit
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

// CommitDetail is the full diff result for one commit. Stats always
// equals the sum over Files of additions and deletions.
type CommitDetail struct {
	SHA   string      `json:"sha"`
	Stats Stats       `json:"stats"`
	Files []FileDelta `json:"files"`
}

// Strategy computes one commit's file deltas against its first parent
type Strategy interface {
	Diff(repo *gogit.Repository, commit *object.Commit) (*CommitDetail, error)
}

// commitTrees resolves the trees to compare for a commit. The old tree is
// nil for root commits; an unreadable parent degrades to a root diff.
func commitTrees(commit *object.Commit) (oldTree, newTree *object.Tree, err error) {
	newTree, err = commit.Tree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read commit tree: %w", err)
	}

	if commit.NumParents() == 0 {
		return nil, newTree, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, newTree, nil
	}
	oldTree, err = parent.Tree()
	if err != nil {
		return nil, newTree, nil
	}

	return oldTree, newTree, nil
}

// rollUp assembles a CommitDetail whose stats are the sum of its files
func rollUp(sha string, files []FileDelta) *CommitDetail {
	detail := &CommitDetail{SHA: sha, Files: files}
	for _, f := range files {
		detail.Stats.Additions += f.Additions
		detail.Stats.Deletions += f.Deletions
	}
	detail.Stats.Total = detail.Stats.Additions + detail.Stats.Deletions
	return detail
}
