package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-git/v6/plumbing"

	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// linearHistory builds n commits, each changing the same file
func linearHistory(t *testing.T, n int) (*ingest.Fixture, []ingest.CommitSummary) {
	t.Helper()

	f := ingest.NewFixture(t)
	base := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

	var parent plumbing.Hash
	var head plumbing.Hash
	for i := range n {
		tree := f.Tree(map[string]string{"file.txt": fmt.Sprintf("revision %d\n", i)})
		var parents []plumbing.Hash
		if i > 0 {
			parents = append(parents, parent)
		}
		head = f.Commit(tree, fmt.Sprintf("change %d", i), "alice", base.Add(time.Duration(i)*time.Hour), parents...)
		parent = head
	}
	f.SetHead(head)

	commits, err := ingest.FirstParentHistory(f.Repo)
	if err != nil {
		t.Fatalf("FirstParentHistory failed: %v", err)
	}
	if len(commits) != n {
		t.Fatalf("Expected %d commits, got %d", n, len(commits))
	}
	return f, commits
}

func TestDiffBatchesAllCommits(t *testing.T) {
	f, commits := linearHistory(t, 23)

	sampled := SampleIndices(len(commits), FullDiffBudget)
	var batchEnds []int
	details := DiffBatches(context.Background(), f.Repo, commits, sampled, func(done, total int) {
		if total != 23 {
			t.Errorf("Progress total = %d, want 23", total)
		}
		batchEnds = append(batchEnds, done)
	})

	if len(details) != 23 {
		t.Fatalf("Expected 23 details, got %d", len(details))
	}

	// Batches of 10 over 23 commits: progress after 10, 20, 23
	want := []int{10, 20, 23}
	if len(batchEnds) != len(want) {
		t.Fatalf("Expected %d progress calls, got %v", len(want), batchEnds)
	}
	for i, end := range want {
		if batchEnds[i] != end {
			t.Errorf("Progress %d = %d, want %d", i, batchEnds[i], end)
		}
	}

	for _, detail := range details {
		if detail.Stats.Total != detail.Stats.Additions+detail.Stats.Deletions {
			t.Errorf("Detail %s breaks the stats invariant", detail.SHA)
		}
	}
}

func TestDiffBatchesDropsUnreadableCommits(t *testing.T) {
	f, commits := linearHistory(t, 5)

	// Corrupt one summary so its commit cannot be found in the store
	commits[2].SHA = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"

	details := DiffBatches(context.Background(), f.Repo, commits, nil, nil)

	if len(details) != 4 {
		t.Fatalf("Expected the unreadable commit dropped, got %d details", len(details))
	}
	for _, detail := range details {
		if detail.SHA == commits[2].SHA {
			t.Error("Unreadable commit present in results")
		}
	}
}

func TestDiffBatchesPreservesCommitOrder(t *testing.T) {
	f, commits := linearHistory(t, 15)

	details := DiffBatches(context.Background(), f.Repo, commits, nil, nil)

	if len(details) != len(commits) {
		t.Fatalf("Expected %d details, got %d", len(commits), len(details))
	}
	for i := range details {
		if details[i].SHA != commits[i].SHA {
			t.Fatalf("Detail %d out of order", i)
		}
	}
}

func TestDiffBatchesUsesFullStrategyForSampled(t *testing.T) {
	f := ingest.NewFixture(t)
	base := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)

	// Parent with one line, child replacing it with five lines: the
	// fast diff would report 1/1, the full diff 5/1.
	parent := f.Commit(f.Tree(map[string]string{"f.txt": "old\n"}), "base", "alice", base)
	child := f.Commit(f.Tree(map[string]string{"f.txt": "a\nb\nc\nd\ne\n"}), "rewrite", "alice", base.Add(time.Hour), parent)
	f.SetHead(child)

	commits, err := ingest.FirstParentHistory(f.Repo)
	if err != nil {
		t.Fatalf("FirstParentHistory failed: %v", err)
	}

	full := DiffBatches(context.Background(), f.Repo, commits, map[int]bool{1: true}, nil)
	if full[1].Stats.Additions != 5 || full[1].Stats.Deletions != 1 {
		t.Errorf("Sampled commit not fully diffed: %+v", full[1].Stats)
	}

	fast := DiffBatches(context.Background(), f.Repo, commits, nil, nil)
	if fast[1].Stats.Additions != 1 || fast[1].Stats.Deletions != 1 {
		t.Errorf("Unsampled commit not fast diffed: %+v", fast[1].Stats)
	}
}
