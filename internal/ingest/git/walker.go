package git

import (
	"path"
	"sort"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
)

// Change reports one path whose blob identity differs between two trees.
// A zero hash marks the side where the path is absent.
type Change struct {
	Path    string
	OldHash plumbing.Hash
	NewHash plumbing.Hash
}

// WalkChanges enumerates every file whose blob identity differs between
// oldTree and newTree, invoking fn once per changed path. oldTree may be
// nil for root commits. Directory entries are recursed into, never
// reported; submodule entries are skipped. Subtrees that cannot be read
// are treated as absent, so their files surface as one-sided changes
// rather than aborting the walk.
func WalkChanges(store storer.EncodedObjectStorer, oldTree, newTree *object.Tree, fn func(Change) error) error {
	return walkTrees(store, "", oldTree, newTree, fn)
}

func walkTrees(store storer.EncodedObjectStorer, prefix string, oldTree, newTree *object.Tree, fn func(Change) error) error {
	oldEntries := entryMap(oldTree)
	newEntries := entryMap(newTree)

	for _, name := range entryNames(oldEntries, newEntries) {
		oldEntry, inOld := oldEntries[name]
		newEntry, inNew := newEntries[name]
		entryPath := path.Join(prefix, name)

		if inOld && inNew && oldEntry.Hash == newEntry.Hash && isDir(oldEntry) == isDir(newEntry) {
			continue
		}

		switch {
		case inOld && inNew && isDir(oldEntry) && isDir(newEntry):
			err := walkTrees(store, entryPath, loadTree(store, oldEntry.Hash), loadTree(store, newEntry.Hash), fn)
			if err != nil {
				return err
			}
		case inOld && inNew:
			// A directory replaced by a file, or vice versa, is a
			// removal of one side plus an addition of the other.
			if err := walkSide(store, entryPath, oldEntry, true, fn); err != nil {
				return err
			}
			if err := walkSide(store, entryPath, newEntry, false, fn); err != nil {
				return err
			}
		case inOld:
			if err := walkSide(store, entryPath, oldEntry, true, fn); err != nil {
				return err
			}
		case inNew:
			if err := walkSide(store, entryPath, newEntry, false, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// walkSide reports everything under a one-sided entry as added or removed
func walkSide(store storer.EncodedObjectStorer, entryPath string, entry object.TreeEntry, old bool, fn func(Change) error) error {
	if isDir(entry) {
		if old {
			return walkTrees(store, entryPath, loadTree(store, entry.Hash), nil, fn)
		}
		return walkTrees(store, entryPath, nil, loadTree(store, entry.Hash), fn)
	}

	change := Change{Path: entryPath}
	if old {
		change.OldHash = entry.Hash
	} else {
		change.NewHash = entry.Hash
	}
	return fn(change)
}

// entryMap indexes a tree's blob and subtree entries by name, dropping
// submodules (their objects live in another repository)
func entryMap(tree *object.Tree) map[string]object.TreeEntry {
	if tree == nil {
		return nil
	}
	entries := make(map[string]object.TreeEntry, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.Mode == filemode.Submodule {
			continue
		}
		entries[entry.Name] = entry
	}
	return entries
}

// entryNames returns the sorted union of names on both sides
func entryNames(oldEntries, newEntries map[string]object.TreeEntry) []string {
	names := make([]string, 0, len(oldEntries)+len(newEntries))
	for name := range oldEntries {
		names = append(names, name)
	}
	for name := range newEntries {
		if _, seen := oldEntries[name]; !seen {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func isDir(entry object.TreeEntry) bool {
	return entry.Mode == filemode.Dir
}

// loadTree reads a subtree, treating unreadable objects as absent
func loadTree(store storer.EncodedObjectStorer, hash plumbing.Hash) *object.Tree {
	tree, err := object.GetTree(store, hash)
	if err != nil {
		return nil
	}
	return tree
}
