package git

import (
	"sort"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/memory"
)

// Fixture builds throwaway in-memory repositories for tests. Objects are
// written straight into the store, so no network or filesystem is needed.
type Fixture struct {
	T    *testing.T
	Repo *gogit.Repository
}

// NewFixture creates an empty in-memory repository
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	repo, err := gogit.Init(memory.NewStorage(), nil)
	if err != nil {
		t.Fatalf("Failed to init in-memory repository: %v", err)
	}

	return &Fixture{T: t, Repo: repo}
}

// Blob stores content as a blob object and returns its hash
func (f *Fixture) Blob(content string) plumbing.Hash {
	f.T.Helper()

	obj := f.Repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(content)))

	w, err := obj.Writer()
	if err != nil {
		f.T.Fatalf("Failed to open blob writer: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		f.T.Fatalf("Failed to write blob: %v", err)
	}
	w.Close()

	hash, err := f.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		f.T.Fatalf("Failed to store blob: %v", err)
	}
	return hash
}

// Tree stores a tree built from path -> content entries. Paths may
// contain slashes; intermediate trees are created as needed.
func (f *Fixture) Tree(files map[string]string) plumbing.Hash {
	f.T.Helper()

	blobs := make(map[string]plumbing.Hash, len(files))
	for filePath, content := range files {
		blobs[filePath] = f.Blob(content)
	}
	return f.treeFrom(blobs)
}

func (f *Fixture) treeFrom(files map[string]plumbing.Hash) plumbing.Hash {
	f.T.Helper()

	direct := map[string]plumbing.Hash{}
	subdirs := map[string]map[string]plumbing.Hash{}
	for filePath, hash := range files {
		if i := strings.IndexByte(filePath, '/'); i >= 0 {
			dir, rest := filePath[:i], filePath[i+1:]
			if subdirs[dir] == nil {
				subdirs[dir] = map[string]plumbing.Hash{}
			}
			subdirs[dir][rest] = hash
		} else {
			direct[filePath] = hash
		}
	}

	var entries []object.TreeEntry
	for name, hash := range direct {
		entries = append(entries, object.TreeEntry{Name: name, Mode: filemode.Regular, Hash: hash})
	}
	for dir, sub := range subdirs {
		entries = append(entries, object.TreeEntry{Name: dir, Mode: filemode.Dir, Hash: f.treeFrom(sub)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	tree := object.Tree{Entries: entries}
	obj := f.Repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.TreeObject)
	if err := tree.Encode(obj); err != nil {
		f.T.Fatalf("Failed to encode tree: %v", err)
	}

	hash, err := f.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		f.T.Fatalf("Failed to store tree: %v", err)
	}
	return hash
}

// Commit stores a commit pointing at treeHash and returns its hash
func (f *Fixture) Commit(treeHash plumbing.Hash, message, author string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	f.T.Helper()

	sig := object.Signature{Name: author, Email: author + "@example.com", When: when}
	commit := object.Commit{
		TreeHash:     treeHash,
		ParentHashes: parents,
		Author:       sig,
		Committer:    sig,
		Message:      message,
	}

	obj := f.Repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.CommitObject)
	if err := commit.Encode(obj); err != nil {
		f.T.Fatalf("Failed to encode commit: %v", err)
	}

	hash, err := f.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		f.T.Fatalf("Failed to store commit: %v", err)
	}
	return hash
}

// SetHead points refs/heads/main (and HEAD) at the given commit
func (f *Fixture) SetHead(commit plumbing.Hash) {
	f.T.Helper()

	branch := plumbing.NewHashReference(plumbing.NewBranchReferenceName("main"), commit)
	if err := f.Repo.Storer.SetReference(branch); err != nil {
		f.T.Fatalf("Failed to set branch reference: %v", err)
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, branch.Name())
	if err := f.Repo.Storer.SetReference(head); err != nil {
		f.T.Fatalf("Failed to set HEAD reference: %v", err)
	}
}

// TreeOf reads back a stored tree object
func (f *Fixture) TreeOf(hash plumbing.Hash) *object.Tree {
	f.T.Helper()

	tree, err := object.GetTree(f.Repo.Storer, hash)
	if err != nil {
		f.T.Fatalf("Failed to read tree %s: %v", hash, err)
	}
	return tree
}
