package stats

import (
	"path"
	"sort"
	"strings"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

// topExtensions caps both per-extension rankings
const topExtensions = 20

// TimeBreakdowns counts commits along the calendar axes and ranks file
// extensions by commit and line activity.
func TimeBreakdowns(raw *aggregate.RawDataBundle) TimeBreakdown {
	var tb TimeBreakdown

	years := map[int]int{}
	for _, commit := range raw.Commits {
		when := commit.Author.When.UTC()
		tb.ByWeekday[int(when.Weekday())]++
		tb.ByMonth[int(when.Month())-1]++
		years[when.Year()]++
	}

	yearList := make([]int, 0, len(years))
	for year := range years {
		yearList = append(yearList, year)
	}
	sort.Ints(yearList)
	for _, year := range yearList {
		tb.ByYear = append(tb.ByYear, YearCount{Year: year, Commits: years[year]})
	}

	extCommits := map[string]int{}
	extLines := map[string]int{}
	for _, detail := range raw.CommitDetails {
		seen := map[string]bool{}
		for _, file := range detail.Files {
			ext := fileExtension(file.Filename)
			if ext == "" {
				continue
			}
			if !seen[ext] {
				seen[ext] = true
				extCommits[ext]++
			}
			extLines[ext] += file.Additions + file.Deletions
		}
	}

	tb.CommitsByExtension = rankExtensionCounts(extCommits)
	tb.LinesByExtension = rankExtensionLines(extLines)

	return tb
}

func fileExtension(filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	return strings.ToLower(ext)
}

func rankExtensionCounts(counts map[string]int) []ExtensionCount {
	ranked := make([]ExtensionCount, 0, len(counts))
	for ext, n := range counts {
		ranked = append(ranked, ExtensionCount{Extension: ext, Commits: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Commits != ranked[j].Commits {
			return ranked[i].Commits > ranked[j].Commits
		}
		return ranked[i].Extension < ranked[j].Extension
	})
	if len(ranked) > topExtensions {
		ranked = ranked[:topExtensions]
	}
	return ranked
}

func rankExtensionLines(lines map[string]int) []ExtensionLines {
	ranked := make([]ExtensionLines, 0, len(lines))
	for ext, n := range lines {
		ranked = append(ranked, ExtensionLines{Extension: ext, Lines: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Lines != ranked[j].Lines {
			return ranked[i].Lines > ranked[j].Lines
		}
		return ranked[i].Extension < ranked[j].Extension
	})
	if len(ranked) > topExtensions {
		ranked = ranked[:topExtensions]
	}
	return ranked
}
