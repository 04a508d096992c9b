package git

import (
	"fmt"
	"path"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/src-d/enry/v2"
)

// Census walks the files reachable from HEAD and counts text lines per
// detected language. Binary blobs are counted separately and contribute
// zero lines; unreadable blobs are skipped entirely.
func Census(repo *gogit.Repository) (*RepoCensus, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD tree: %w", err)
	}

	census := &RepoCensus{Languages: map[string]int{}}

	err = tree.Files().ForEach(func(file *object.File) error {
		census.FileCount++

		content, err := file.Contents()
		if err != nil {
			return nil
		}

		data := []byte(content)
		if IsBinary(data) {
			census.BinaryFiles++
			return nil
		}

		lines := CountLines(data)
		census.TotalLines += lines

		if lang := enry.GetLanguage(path.Base(file.Name), data); lang != "" {
			census.Languages[lang] += lines
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk HEAD tree: %w", err)
	}

	return census, nil
}
