package diff

import (
	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// LineDiff approximates line-level additions and deletions by comparing
// per-line occurrence counts on each side. It is order-insensitive: a
// pure reordering of lines counts as no change. That imprecision is the
// deliberate trade for O(n) behavior at repository scale; swapping in a
// sequence-aligned diff would change every downstream number.
func LineDiff(oldContent, newContent []byte) (additions, deletions int) {
	oldCounts := lineCounts(oldContent)
	newCounts := lineCounts(newContent)

	for line, n := range newCounts {
		if o := oldCounts[line]; n > o {
			additions += n - o
		}
	}
	for line, o := range oldCounts {
		if n := newCounts[line]; o > n {
			deletions += o - n
		}
	}
	return additions, deletions
}

func lineCounts(content []byte) map[string]int {
	lines := ingest.SplitLines(content)
	if lines == nil {
		return nil
	}
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		counts[line]++
	}
	return counts
}
