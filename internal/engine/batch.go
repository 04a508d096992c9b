package engine

import (
	"context"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"golang.org/x/sync/errgroup"

	"github.com/gitpulse/gitpulse/internal/diff"
	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// BatchSize is how many commit diffs run concurrently per batch
const BatchSize = 10

// DiffBatches diffs every commit in order, in fixed-size batches whose
// members run concurrently. Commits whose diff fails are dropped so one
// unreadable commit never blocks statistics for the rest of the history.
// onBatch, when set, is called after each batch with done and total
// commit counts.
func DiffBatches(ctx context.Context, repo *gogit.Repository, commits []ingest.CommitSummary, sampled map[int]bool, onBatch func(done, total int)) []diff.CommitDetail {
	var fast, full diff.Strategy = diff.FastStrategy{}, diff.FullStrategy{}

	// Tagged results: a nil slot is a dropped commit
	results := make([]*diff.CommitDetail, len(commits))

	for start := 0; start < len(commits); start += BatchSize {
		if ctx.Err() != nil {
			break
		}

		end := min(start+BatchSize, len(commits))

		g, _ := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				commit, err := repo.CommitObject(plumbing.NewHash(commits[i].SHA))
				if err != nil {
					return nil
				}

				strategy := fast
				if sampled[i] {
					strategy = full
				}

				detail, err := strategy.Diff(repo, commit)
				if err != nil {
					return nil
				}
				results[i] = detail
				return nil
			})
		}
		// Tasks swallow their own failures, so Wait cannot error
		_ = g.Wait()

		if onBatch != nil {
			onBatch(end, len(commits))
		}
	}

	kept := make([]diff.CommitDetail, 0, len(commits))
	for _, detail := range results {
		if detail != nil {
			kept = append(kept, *detail)
		}
	}
	return kept
}
