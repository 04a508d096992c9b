package stats

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

const (
	minWordLength = 3
	topWords      = 80
)

// conventionalRe matches the conventional-commit prefix on a first line:
// type, optional scope, optional breaking marker, colon.
var conventionalRe = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore)(\([^)]*\))?!?:`)

var wordSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "into": true, "not": true, "are": true,
	"was": true, "were": true, "has": true, "have": true, "had": true,
	"its": true, "all": true, "can": true, "will": true, "when": true,
	"some": true, "more": true, "also": true, "but": true, "you": true,
}

// AnalyzeMessages classifies commit messages, measures their lengths and
// builds a word-frequency table from first lines.
func AnalyzeMessages(raw *aggregate.RawDataBundle) MessageStats {
	ms := MessageStats{Types: map[string]int{}}

	lengths := make([]int, 0, len(raw.Commits))
	wordCounts := map[string]int{}

	for _, commit := range raw.Commits {
		message := commit.Message
		lengths = append(lengths, len(message))

		if strings.HasPrefix(message, "Merge ") {
			ms.MergeCommits++
		}

		firstLine := message
		if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
			firstLine = firstLine[:i]
		}
		firstLine = strings.TrimSpace(firstLine)

		if m := conventionalRe.FindStringSubmatch(firstLine); m != nil {
			ms.Types[m[1]]++
			firstLine = strings.TrimSpace(firstLine[len(m[0]):])
		} else {
			ms.Types["other"]++
		}

		for _, word := range wordSplitRe.Split(strings.ToLower(firstLine), -1) {
			if len(word) < minWordLength || stopwords[word] {
				continue
			}
			wordCounts[word]++
		}
	}

	if len(lengths) > 0 {
		sum := 0
		for _, l := range lengths {
			sum += l
		}
		ms.AverageLength = float64(sum) / float64(len(lengths))

		sort.Ints(lengths)
		mid := len(lengths) / 2
		if len(lengths)%2 == 1 {
			ms.MedianLength = float64(lengths[mid])
		} else {
			ms.MedianLength = float64(lengths[mid-1]+lengths[mid]) / 2
		}
	}

	words := make([]WordCount, 0, len(wordCounts))
	for word, count := range wordCounts {
		words = append(words, WordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > topWords {
		words = words[:topWords]
	}
	ms.TopWords = words

	return ms
}
