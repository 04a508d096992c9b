package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/transport"
	githttp "github.com/go-git/go-git/v6/plumbing/transport/http"
	"github.com/go-git/go-git/v6/storage/memory"
)

// CloneOptions configures a clone into the in-memory object store
type CloneOptions struct {
	// ProxyURL routes the fetch through an HTTP(S) proxy when set
	ProxyURL string
	// Token authenticates against private repositories when set
	Token string
}

// Clone fetches a repository's object store into memory. No working tree
// is checked out; every later read goes through the object store.
func Clone(ctx context.Context, url string, opts CloneOptions) (*gogit.Repository, error) {
	cloneOpts := &gogit.CloneOptions{
		URL:          url,
		SingleBranch: true,
		Tags:         gogit.NoTags,
	}
	if opts.ProxyURL != "" {
		cloneOpts.ProxyOptions = transport.ProxyOptions{URL: opts.ProxyURL}
	}
	if opts.Token != "" {
		cloneOpts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: opts.Token}
	}

	repo, err := gogit.CloneContext(ctx, memory.NewStorage(), nil, cloneOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}

	return repo, nil
}

// FirstParentHistory walks first parents from HEAD and returns commits
// ordered oldest to newest. Side branches of merge commits are not
// traversed. An unreadable parent ends the walk instead of failing it.
func FirstParentHistory(repo *gogit.Repository) ([]CommitSummary, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	var commits []CommitSummary
	for commit != nil {
		commits = append(commits, summarize(commit))
		if commit.NumParents() == 0 {
			break
		}
		parent, err := commit.Parent(0)
		if err != nil {
			break
		}
		commit = parent
	}

	// Reverse into chronological order
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	return commits, nil
}

func summarize(commit *object.Commit) CommitSummary {
	return CommitSummary{
		SHA:       commit.Hash.String(),
		Message:   commit.Message,
		Author:    parseSignature(commit.Author),
		Committer: parseSignature(commit.Committer),
	}
}

func parseSignature(sig object.Signature) Signature {
	return Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}
