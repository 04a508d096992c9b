package stats

import (
	"math"
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/internal/aggregate"
	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

func TestContributorsFallbackFromRawCommits(t *testing.T) {
	base := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	raw := &aggregate.RawDataBundle{
		Commits: []ingest.CommitSummary{
			commitBy("alice", base, "one"),
			commitBy("alice", base.Add(time.Hour), "two"),
			commitBy("alice", base.Add(2*time.Hour), "three"),
			commitBy("bob", base.Add(3*time.Hour), "four"),
		},
	}

	contributors := Contributors(raw)

	if len(contributors) != 2 {
		t.Fatalf("Expected 2 contributors, got %d", len(contributors))
	}
	if contributors[0].Name != "alice" || contributors[0].Commits != 3 || contributors[0].Percent != 75 {
		t.Errorf("First contributor wrong: %+v", contributors[0])
	}
	if contributors[1].Name != "bob" || contributors[1].Commits != 1 || contributors[1].Percent != 25 {
		t.Errorf("Second contributor wrong: %+v", contributors[1])
	}
	if contributors[1].Cumulative != 100 {
		t.Errorf("Cumulative curve must end at 100, got %f", contributors[1].Cumulative)
	}

	bf := ComputeBusFactor(contributors)
	if bf.Count != 1 {
		t.Errorf("Bus factor = %d, want 1 (alice alone crosses 50%%)", bf.Count)
	}
}

func TestContributorsPreferWeeklySeries(t *testing.T) {
	raw := &aggregate.RawDataBundle{
		// Raw commits disagree with the weekly series on purpose
		Commits: []ingest.CommitSummary{
			commitBy("carol", time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC), "x"),
		},
		ContributorStats: []aggregate.ContributorStats{
			{Author: "alice", Total: 6},
			{Author: "bob", Total: 4},
		},
	}

	contributors := Contributors(raw)

	if len(contributors) != 2 || contributors[0].Name != "alice" {
		t.Fatalf("Weekly series not preferred: %+v", contributors)
	}
	if contributors[0].Percent != 60 {
		t.Errorf("Share = %f, want 60", contributors[0].Percent)
	}
}

func TestBusFactorMonotonic(t *testing.T) {
	// alice 60%: bus factor 1. Adding a tiny contributor must not move
	// the 50% crossing point.
	before := []Contributor{
		{Name: "alice", Commits: 6, Percent: 60},
		{Name: "bob", Commits: 4, Percent: 40},
	}
	after := []Contributor{
		{Name: "alice", Commits: 6, Percent: 54.5},
		{Name: "bob", Commits: 4, Percent: 36.4},
		{Name: "carol", Commits: 1, Percent: 9.1},
	}

	if ComputeBusFactor(before).Count != ComputeBusFactor(after).Count {
		t.Error("Bus factor changed although the 50% crossing point did not")
	}
}

func TestHerfindahlBounds(t *testing.T) {
	single := []Contributor{{Name: "alice", Percent: 100}}
	if got := ComputeBusFactor(single).Herfindahl; math.Abs(got-1) > 1e-9 {
		t.Errorf("Herfindahl for a single contributor = %f, want 1", got)
	}

	for _, k := range []int{2, 4, 10} {
		equal := make([]Contributor, k)
		for i := range equal {
			equal[i] = Contributor{Name: string(rune('a' + i)), Percent: 100 / float64(k)}
		}
		got := ComputeBusFactor(equal).Herfindahl
		if math.Abs(got-1/float64(k)) > 1e-9 {
			t.Errorf("Herfindahl for %d equal contributors = %f, want %f", k, got, 1/float64(k))
		}
		if got < 0 || got > 1 {
			t.Errorf("Herfindahl out of [0,1]: %f", got)
		}
	}
}
