// Package github resolves repository metadata through the GitHub API
// before a run clones the object store.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v77/github"
)

// Repository is the metadata a run needs before cloning
type Repository struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	CloneURL      string `json:"clone_url"`
	DefaultBranch string `json:"default_branch"`
	Description   string `json:"description"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
}

// NewClient creates a GitHub API client. An empty token yields an
// unauthenticated client with the lower rate limit.
func NewClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	return github.NewClient(nil).WithAuthToken(token)
}

// ResolveRepository fetches clone coordinates for owner/name
func ResolveRepository(ctx context.Context, client *github.Client, owner, name string) (*Repository, error) {
	ghRepo, _, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}

	return &Repository{
		Owner:         owner,
		Name:          name,
		CloneURL:      ghRepo.GetCloneURL(),
		DefaultBranch: ghRepo.GetDefaultBranch(),
		Description:   ghRepo.GetDescription(),
		Stars:         ghRepo.GetStargazersCount(),
		Forks:         ghRepo.GetForksCount(),
	}, nil
}
