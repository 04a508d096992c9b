package diff

import (
	"fmt"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"

	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// FastStrategy determines per-file status from tree identity alone and
// never reads blob content. Line deltas are a unit-valued "something
// changed" signal: 1/0 for added, 0/1 for removed, 1/1 for modified.
type FastStrategy struct{}

// Diff implements Strategy
func (FastStrategy) Diff(repo *gogit.Repository, commit *object.Commit) (*CommitDetail, error) {
	oldTree, newTree, err := commitTrees(commit)
	if err != nil {
		return nil, err
	}

	var files []FileDelta
	err = ingest.WalkChanges(repo.Storer, oldTree, newTree, func(c ingest.Change) error {
		delta := FileDelta{Filename: c.Path}
		switch {
		case c.OldHash == plumbing.ZeroHash:
			delta.Status = StatusAdded
			delta.Additions = 1
		case c.NewHash == plumbing.ZeroHash:
			delta.Status = StatusRemoved
			delta.Deletions = 1
		default:
			delta.Status = StatusModified
			delta.Additions = 1
			delta.Deletions = 1
		}
		files = append(files, delta)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commit %s: %w", commit.Hash, err)
	}

	return rollUp(commit.Hash.String(), files), nil
}
