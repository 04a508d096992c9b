package stats

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

// Analyze derives the full analysis bundle from raw engine output. now is
// injected so the repo-age computation is reproducible.
func Analyze(raw *aggregate.RawDataBundle, now time.Time) *AnalysisBundle {
	contributors := Contributors(raw)

	bundle := &AnalysisBundle{
		Contributors:   contributors,
		BusFactor:      ComputeBusFactor(contributors),
		FileChurn:      ComputeFileChurn(raw),
		CommitMessages: AnalyzeMessages(raw),
		CommitSizes:    SizeDistribution(raw.CommitDetails),
		RepoGrowth:     RepoGrowth(raw.CodeFrequency),
		PunchCard:      raw.PunchCard,
		WeeklyActivity: raw.CommitActivity,
		Languages:      raw.Languages,
		Times:          TimeBreakdowns(raw),
		FileCoupling:   ComputeFileCoupling(raw),
	}

	if first := firstCommitDate(raw); first != nil {
		bundle.FirstCommitDate = first
		bundle.RepoAgeDays = int(now.Sub(*first).Hours() / 24)
	}

	return bundle
}

func firstCommitDate(raw *aggregate.RawDataBundle) *time.Time {
	var earliest time.Time
	for _, commit := range raw.Commits {
		when := commit.Author.When.UTC()
		if earliest.IsZero() || when.Before(earliest) {
			earliest = when
		}
	}
	if earliest.IsZero() {
		return nil
	}
	return &earliest
}
