// Package aggregate folds the commit stream and per-commit diff stats
// into week-aligned raw data for the statistics layer.
package aggregate

import (
	"github.com/gitpulse/gitpulse/internal/diff"
	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// WeekStat is one author's activity in one week
type WeekStat struct {
	Week      int64 `json:"w"`
	Additions int   `json:"a"`
	Deletions int   `json:"d"`
	Commits   int   `json:"c"`
}

// ContributorStats is one author's weekly series. Every series covers the
// same global week axis, zero-filled, so series compare index by index.
type ContributorStats struct {
	Author string     `json:"author"`
	Total  int        `json:"total"`
	Weeks  []WeekStat `json:"weeks"`
}

// CodeFrequencyRow is [week start unix, additions, negated deletions]
type CodeFrequencyRow [3]int64

// CommitActivity is one week's commit counts, bucketed by weekday
type CommitActivity struct {
	Days  [7]int `json:"days"`
	Total int    `json:"total"`
	Week  int64  `json:"week"`
}

// PunchCardCell is [weekday 0-6, hour 0-23, commit count]
type PunchCardCell [3]int

// RawDataBundle is the engine's output: everything the statistics layer
// needs, assembled once per run and treated as an immutable snapshot.
type RawDataBundle struct {
	Commits          []ingest.CommitSummary `json:"commits"`
	CommitDetails    []diff.CommitDetail    `json:"commit_details"`
	ContributorStats []ContributorStats     `json:"contributor_stats"`
	CodeFrequency    []CodeFrequencyRow     `json:"code_frequency"`
	CommitActivity   []CommitActivity       `json:"commit_activity"`
	PunchCard        []PunchCardCell        `json:"punch_card"`
	Languages        map[string]int         `json:"languages"`
	TotalLinesOfCode int                    `json:"total_lines_of_code"`
	BinaryFileCount  int                    `json:"binary_file_count"`
}
