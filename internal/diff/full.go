package diff

import (
	"fmt"
	"io"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"

	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// FullStrategy reads blob content on both sides and estimates line deltas
// with a per-line frequency comparison. Binary content on either side
// yields a 0/0 delta; an unreadable blob degrades to empty content, and a
// change where neither side can be read comes back with StatusUnknown.
type FullStrategy struct{}

// Diff implements Strategy
func (FullStrategy) Diff(repo *gogit.Repository, commit *object.Commit) (*CommitDetail, error) {
	oldTree, newTree, err := commitTrees(commit)
	if err != nil {
		return nil, err
	}

	var files []FileDelta
	err = ingest.WalkChanges(repo.Storer, oldTree, newTree, func(c ingest.Change) error {
		files = append(files, fileDelta(repo, c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commit %s: %w", commit.Hash, err)
	}

	return rollUp(commit.Hash.String(), files), nil
}

func fileDelta(repo *gogit.Repository, c ingest.Change) FileDelta {
	delta := FileDelta{Filename: c.Path}

	oldAbsent := c.OldHash == plumbing.ZeroHash
	newAbsent := c.NewHash == plumbing.ZeroHash

	var oldContent, newContent []byte
	var oldErr, newErr error
	if !oldAbsent {
		oldContent, oldErr = blobContent(repo, c.OldHash)
	}
	if !newAbsent {
		newContent, newErr = blobContent(repo, c.NewHash)
	}

	switch {
	case oldAbsent:
		delta.Status = StatusAdded
	case newAbsent:
		delta.Status = StatusRemoved
	case oldErr != nil && newErr != nil:
		delta.Status = StatusUnknown
		return delta
	default:
		delta.Status = StatusModified
	}

	if ingest.IsBinary(oldContent) || ingest.IsBinary(newContent) {
		return delta
	}

	delta.Additions, delta.Deletions = LineDiff(oldContent, newContent)
	return delta
}

func blobContent(repo *gogit.Repository, hash plumbing.Hash) ([]byte, error) {
	blob, err := repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", hash, err)
	}

	r, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", hash, err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", hash, err)
	}
	return content, nil
}
