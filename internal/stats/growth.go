package stats

import "github.com/gitpulse/gitpulse/internal/aggregate"

// RepoGrowth turns weekly code-frequency rows into cumulative curves:
// one point per week with running additions, deletions and net size.
func RepoGrowth(codeFrequency []aggregate.CodeFrequencyRow) []GrowthPoint {
	points := make([]GrowthPoint, 0, len(codeFrequency))

	additions, deletions := 0, 0
	for _, row := range codeFrequency {
		additions += int(row[1])
		deletions += int(-row[2])
		points = append(points, GrowthPoint{
			Week:      row[0],
			Additions: additions,
			Deletions: deletions,
			Net:       additions - deletions,
		})
	}
	return points
}
