package stats

import (
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

func messagesBundle(messages ...string) *aggregate.RawDataBundle {
	base := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	raw := &aggregate.RawDataBundle{}
	for i, message := range messages {
		commit := commitBy("alice", base.Add(time.Duration(i)*time.Hour), message)
		raw.Commits = append(raw.Commits, commit)
	}
	return raw
}

func TestMessageTypeClassification(t *testing.T) {
	raw := messagesBundle(
		"feat: add widget",
		"feat(api): add endpoint",
		"fix!: breaking repair",
		"chore(deps): bump",
		"just a plain message",
		"feature creep is not a type",
	)

	ms := AnalyzeMessages(raw)

	if ms.Types["feat"] != 2 {
		t.Errorf("feat = %d, want 2", ms.Types["feat"])
	}
	if ms.Types["fix"] != 1 || ms.Types["chore"] != 1 {
		t.Errorf("Types wrong: %v", ms.Types)
	}
	if ms.Types["other"] != 2 {
		t.Errorf("other = %d, want 2 (plain message and unknown prefix)", ms.Types["other"])
	}
}

func TestMessageMergeCounting(t *testing.T) {
	raw := messagesBundle(
		"Merge pull request #1 from fork/branch",
		"Merge branch 'main' into dev",
		"fix: do not merge this counter",
	)

	if ms := AnalyzeMessages(raw); ms.MergeCommits != 2 {
		t.Errorf("MergeCommits = %d, want 2", ms.MergeCommits)
	}
}

func TestMessageLengths(t *testing.T) {
	// Lengths 2, 4, 6: average 4, median 4. The body after the first
	// newline counts toward length.
	raw := messagesBundle("ab", "abcd", "ab\ncde")

	ms := AnalyzeMessages(raw)

	if ms.AverageLength != 4 {
		t.Errorf("AverageLength = %f, want 4", ms.AverageLength)
	}
	if ms.MedianLength != 4 {
		t.Errorf("MedianLength = %f, want 4", ms.MedianLength)
	}
}

func TestMessageMedianEvenCount(t *testing.T) {
	raw := messagesBundle("ab", "abcdef")

	if ms := AnalyzeMessages(raw); ms.MedianLength != 4 {
		t.Errorf("MedianLength = %f, want 4", ms.MedianLength)
	}
}

func TestMessageWordFiltering(t *testing.T) {
	raw := messagesBundle(
		"fix: update the parser for the new grammar",
		"fix: update parser tests",
	)

	ms := AnalyzeMessages(raw)

	counts := map[string]int{}
	for _, wc := range ms.TopWords {
		counts[wc.Word] = wc.Count
	}

	if counts["update"] != 2 || counts["parser"] != 2 {
		t.Errorf("Expected update and parser twice, got %v", counts)
	}
	if _, ok := counts["the"]; ok {
		t.Error("Stopword leaked into word counts")
	}
	if _, ok := counts["fix"]; ok {
		t.Error("Conventional type prefix leaked into word counts")
	}
	for word := range counts {
		if len(word) < 3 {
			t.Errorf("Short word leaked into word counts: %q", word)
		}
	}
}

func TestMessageWordsOnlyFromFirstLine(t *testing.T) {
	raw := messagesBundle("short subject\n\nlengthy body paragraph with words")

	ms := AnalyzeMessages(raw)
	for _, wc := range ms.TopWords {
		if wc.Word == "lengthy" || wc.Word == "paragraph" {
			t.Errorf("Body word counted: %q", wc.Word)
		}
	}
}
