package git

import (
	"testing"

	"github.com/go-git/go-git/v6/plumbing"
)

func collectChanges(t *testing.T, f *Fixture, oldTree, newTree plumbing.Hash) map[string]Change {
	t.Helper()

	changes := map[string]Change{}
	err := WalkChanges(f.Repo.Storer, f.TreeOf(oldTree), f.TreeOf(newTree), func(c Change) error {
		changes[c.Path] = c
		return nil
	})
	if err != nil {
		t.Fatalf("WalkChanges failed: %v", err)
	}
	return changes
}

func TestWalkChangesReportsOnlyDifferingBlobs(t *testing.T) {
	f := NewFixture(t)

	oldTree := f.Tree(map[string]string{
		"keep.txt":      "same\n",
		"changed.go":    "package a\n",
		"removed.md":    "bye\n",
		"pkg/nested.go": "package pkg\n",
	})
	newTree := f.Tree(map[string]string{
		"keep.txt":      "same\n",
		"changed.go":    "package b\n",
		"added.txt":     "hi\n",
		"pkg/nested.go": "package pkg // v2\n",
	})

	changes := collectChanges(t, f, oldTree, newTree)

	if len(changes) != 4 {
		t.Fatalf("Expected 4 changes, got %d: %v", len(changes), changes)
	}
	if _, ok := changes["keep.txt"]; ok {
		t.Error("Unchanged path reported")
	}

	added := changes["added.txt"]
	if added.OldHash != plumbing.ZeroHash || added.NewHash == plumbing.ZeroHash {
		t.Errorf("Added file has wrong sides: %+v", added)
	}

	removed := changes["removed.md"]
	if removed.OldHash == plumbing.ZeroHash || removed.NewHash != plumbing.ZeroHash {
		t.Errorf("Removed file has wrong sides: %+v", removed)
	}

	modified := changes["changed.go"]
	if modified.OldHash == plumbing.ZeroHash || modified.NewHash == plumbing.ZeroHash {
		t.Errorf("Modified file has wrong sides: %+v", modified)
	}
	if modified.OldHash == modified.NewHash {
		t.Error("Modified file reported with identical hashes")
	}

	if _, ok := changes["pkg/nested.go"]; !ok {
		t.Error("Nested change not reported with full path")
	}
}

func TestWalkChangesNilOldTree(t *testing.T) {
	f := NewFixture(t)

	newTree := f.Tree(map[string]string{
		"a.txt":     "a\n",
		"dir/b.txt": "b\n",
	})

	changes := map[string]Change{}
	err := WalkChanges(f.Repo.Storer, nil, f.TreeOf(newTree), func(c Change) error {
		changes[c.Path] = c
		return nil
	})
	if err != nil {
		t.Fatalf("WalkChanges failed: %v", err)
	}

	if len(changes) != 2 {
		t.Fatalf("Expected every file reported as added, got %v", changes)
	}
	for path, c := range changes {
		if c.OldHash != plumbing.ZeroHash {
			t.Errorf("Root-commit change %s has an old side", path)
		}
	}
}

func TestWalkChangesUnchangedSubtreeSkipped(t *testing.T) {
	f := NewFixture(t)

	oldTree := f.Tree(map[string]string{
		"stable/one.txt": "1\n",
		"stable/two.txt": "2\n",
		"top.txt":        "old\n",
	})
	newTree := f.Tree(map[string]string{
		"stable/one.txt": "1\n",
		"stable/two.txt": "2\n",
		"top.txt":        "new\n",
	})

	changes := collectChanges(t, f, oldTree, newTree)
	if len(changes) != 1 {
		t.Fatalf("Expected only top.txt reported, got %v", changes)
	}
}

func TestWalkChangesDirectoryReplacedByFile(t *testing.T) {
	f := NewFixture(t)

	oldTree := f.Tree(map[string]string{"conf/a.txt": "a\n", "conf/b.txt": "b\n"})
	newTree := f.Tree(map[string]string{"conf": "flattened\n"})

	changes := collectChanges(t, f, oldTree, newTree)

	if c, ok := changes["conf"]; !ok || c.NewHash == plumbing.ZeroHash {
		t.Errorf("Replacement file not reported as added: %v", changes)
	}
	if c, ok := changes["conf/a.txt"]; !ok || c.OldHash == plumbing.ZeroHash {
		t.Errorf("Old directory contents not reported as removed: %v", changes)
	}
}
