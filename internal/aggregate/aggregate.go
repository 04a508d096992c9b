package aggregate

import (
	"sort"
	"time"

	"github.com/gitpulse/gitpulse/internal/diff"
	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// WeekStart truncates t to the preceding Sunday at 00:00 UTC
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

type weekAccum struct {
	days      [7]int
	total     int
	additions int
	deletions int
}

// Build assembles the raw data bundle from the commit stream, the diff
// details that survived batching, and the HEAD census. Everything is
// keyed by commit timestamp, so intra-batch completion order never
// affects the result. census may be nil when the HEAD walk failed.
func Build(commits []ingest.CommitSummary, details []diff.CommitDetail, census *ingest.RepoCensus) *RawDataBundle {
	bundle := &RawDataBundle{
		Commits:       commits,
		CommitDetails: details,
		Languages:     map[string]int{},
	}
	if census != nil {
		bundle.Languages = census.Languages
		bundle.TotalLinesOfCode = census.TotalLines
		bundle.BinaryFileCount = census.BinaryFiles
	}

	detailBySHA := make(map[string]*diff.CommitDetail, len(details))
	for i := range details {
		detailBySHA[details[i].SHA] = &details[i]
	}

	var punch [7][24]int
	weekly := map[int64]*weekAccum{}
	perAuthor := map[string]map[int64]*WeekStat{}

	for _, commit := range commits {
		when := commit.Author.When.UTC()
		week := WeekStart(when).Unix()
		weekday := int(when.Weekday())

		punch[weekday][when.Hour()]++

		wa := weekly[week]
		if wa == nil {
			wa = &weekAccum{}
			weekly[week] = wa
		}
		wa.days[weekday]++
		wa.total++

		additions, deletions := 0, 0
		if detail := detailBySHA[commit.SHA]; detail != nil {
			additions = detail.Stats.Additions
			deletions = detail.Stats.Deletions
		}
		wa.additions += additions
		wa.deletions += deletions

		author := commit.Author.Name
		if perAuthor[author] == nil {
			perAuthor[author] = map[int64]*WeekStat{}
		}
		ws := perAuthor[author][week]
		if ws == nil {
			ws = &WeekStat{Week: week}
			perAuthor[author][week] = ws
		}
		ws.Additions += additions
		ws.Deletions += deletions
		ws.Commits++
	}

	// The global week axis must exist before any author series is
	// expanded, so every series is the same length.
	weeks := make([]int64, 0, len(weekly))
	for week := range weekly {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] < weeks[j] })

	for _, week := range weeks {
		wa := weekly[week]
		bundle.CodeFrequency = append(bundle.CodeFrequency,
			CodeFrequencyRow{week, int64(wa.additions), -int64(wa.deletions)})
		bundle.CommitActivity = append(bundle.CommitActivity,
			CommitActivity{Days: wa.days, Total: wa.total, Week: week})
	}

	for day := range 7 {
		for hour := range 24 {
			if punch[day][hour] > 0 {
				bundle.PunchCard = append(bundle.PunchCard, PunchCardCell{day, hour, punch[day][hour]})
			}
		}
	}

	authors := make([]string, 0, len(perAuthor))
	for author := range perAuthor {
		authors = append(authors, author)
	}
	sort.Strings(authors)

	for _, author := range authors {
		series := ContributorStats{Author: author, Weeks: make([]WeekStat, 0, len(weeks))}
		sparse := perAuthor[author]
		for _, week := range weeks {
			ws := WeekStat{Week: week}
			if got := sparse[week]; got != nil {
				ws = *got
			}
			series.Total += ws.Commits
			series.Weeks = append(series.Weeks, ws)
		}
		bundle.ContributorStats = append(bundle.ContributorStats, series)
	}

	return bundle
}
