package stats

import (
	"sort"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

// topChurnFiles caps the churn ranking
const topChurnFiles = 100

// ComputeFileChurn ranks files by how often commits touch them
func ComputeFileChurn(raw *aggregate.RawDataBundle) []FileChurn {
	authorBySHA := make(map[string]string, len(raw.Commits))
	for _, commit := range raw.Commits {
		authorBySHA[commit.SHA] = commit.Author.Name
	}

	type churnAccum struct {
		touches   int
		additions int
		deletions int
		authors   map[string]bool
	}
	perFile := map[string]*churnAccum{}

	for _, detail := range raw.CommitDetails {
		author := authorBySHA[detail.SHA]
		for _, file := range detail.Files {
			accum := perFile[file.Filename]
			if accum == nil {
				accum = &churnAccum{authors: map[string]bool{}}
				perFile[file.Filename] = accum
			}
			accum.touches++
			accum.additions += file.Additions
			accum.deletions += file.Deletions
			if author != "" {
				accum.authors[author] = true
			}
		}
	}

	churn := make([]FileChurn, 0, len(perFile))
	for filename, accum := range perFile {
		churn = append(churn, FileChurn{
			Filename:  filename,
			Touches:   accum.touches,
			Additions: accum.additions,
			Deletions: accum.deletions,
			Authors:   len(accum.authors),
		})
	}

	sort.Slice(churn, func(i, j int) bool {
		if churn[i].Touches != churn[j].Touches {
			return churn[i].Touches > churn[j].Touches
		}
		return churn[i].Filename < churn[j].Filename
	})

	if len(churn) > topChurnFiles {
		churn = churn[:topChurnFiles]
	}
	return churn
}
