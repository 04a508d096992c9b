package stats

import (
	"testing"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

func TestRepoGrowthAccumulates(t *testing.T) {
	rows := []aggregate.CodeFrequencyRow{
		{1704067200, 100, -30},
		{1704672000, 50, -10},
	}

	points := RepoGrowth(rows)

	if len(points) != 2 {
		t.Fatalf("Expected 2 growth points, got %d", len(points))
	}
	first := points[0]
	if first.Week != 1704067200 || first.Additions != 100 || first.Deletions != 30 || first.Net != 70 {
		t.Errorf("First point wrong: %+v", first)
	}
	second := points[1]
	if second.Week != 1704672000 || second.Additions != 150 || second.Deletions != 40 || second.Net != 110 {
		t.Errorf("Second point wrong: %+v", second)
	}
}

func TestRepoGrowthEmpty(t *testing.T) {
	if points := RepoGrowth(nil); len(points) != 0 {
		t.Errorf("Expected no growth points, got %+v", points)
	}
}
