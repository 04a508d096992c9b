package stats

import (
	"sort"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

// Contributors ranks authors by commit share, descending. The weekly
// series is preferred; raw commit counts per author name are the
// fallback when no weekly stats exist.
func Contributors(raw *aggregate.RawDataBundle) []Contributor {
	counts := map[string]int{}
	if len(raw.ContributorStats) > 0 {
		for _, series := range raw.ContributorStats {
			counts[series.Author] = series.Total
		}
	} else {
		for _, commit := range raw.Commits {
			counts[commit.Author.Name]++
		}
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	contributors := make([]Contributor, 0, len(names))
	cumulative := 0.0
	for _, name := range names {
		percent := float64(counts[name]) / float64(total) * 100
		cumulative += percent
		contributors = append(contributors, Contributor{
			Name:       name,
			Commits:    counts[name],
			Percent:    percent,
			Cumulative: cumulative,
		})
	}
	return contributors
}

// ComputeBusFactor walks the ranked contributors until their cumulative
// share reaches 50%, and computes the Herfindahl concentration index
// over the whole list.
func ComputeBusFactor(contributors []Contributor) BusFactor {
	var bf BusFactor

	for _, c := range contributors {
		share := c.Percent / 100
		bf.Herfindahl += share * share
	}

	cumulative := 0.0
	for _, c := range contributors {
		cumulative += c.Percent
		bf.Count++
		if cumulative >= 50 {
			break
		}
	}
	return bf
}
