package stats

import (
	"sort"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

// Coupling thresholds. Commits touching fewer than two files cannot
// couple anything; commits touching more than fifty are too noisy to
// signal real coupling and are skipped entirely.
const (
	minCouplingFiles = 2
	maxCouplingFiles = 50
	couplingFileCap  = 20 // filenames considered per commit, after sorting
	minCochanges     = 3
	topCouples       = 20
)

// ComputeFileCoupling finds pairs of files that repeatedly change in the
// same commit.
func ComputeFileCoupling(raw *aggregate.RawDataBundle) []FileCouple {
	type pair struct{ a, b string }
	cochanges := map[pair]int{}

	for _, detail := range raw.CommitDetails {
		if len(detail.Files) < minCouplingFiles || len(detail.Files) > maxCouplingFiles {
			continue
		}

		names := make([]string, 0, len(detail.Files))
		for _, file := range detail.Files {
			names = append(names, file.Filename)
		}
		sort.Strings(names)
		if len(names) > couplingFileCap {
			names = names[:couplingFileCap]
		}

		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				cochanges[pair{names[i], names[j]}]++
			}
		}
	}

	couples := make([]FileCouple, 0, len(cochanges))
	for p, count := range cochanges {
		if count < minCochanges {
			continue
		}
		couples = append(couples, FileCouple{FileA: p.a, FileB: p.b, Cochanges: count})
	}

	sort.Slice(couples, func(i, j int) bool {
		if couples[i].Cochanges != couples[j].Cochanges {
			return couples[i].Cochanges > couples[j].Cochanges
		}
		if couples[i].FileA != couples[j].FileA {
			return couples[i].FileA < couples[j].FileA
		}
		return couples[i].FileB < couples[j].FileB
	})

	if len(couples) > topCouples {
		couples = couples[:topCouples]
	}
	return couples
}
