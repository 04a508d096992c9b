// Package stats derives user-facing metrics from a raw data bundle. Every
// function is pure: the same bundle always produces byte-identical output.
package stats

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/aggregate"
)

// Contributor is one author's share of the commit history. Cumulative is
// the running share including this contributor, kept for the full list so
// consumers can draw the whole concentration curve.
type Contributor struct {
	Name       string  `json:"name"`
	Commits    int     `json:"commits"`
	Percent    float64 `json:"percent"`
	Cumulative float64 `json:"cumulative"`
}

// BusFactor is the contributor-concentration summary
type BusFactor struct {
	// Count is the minimum number of top contributors holding >= 50%
	// of commits between them
	Count int `json:"count"`
	// Herfindahl is the sum of squared shares: 1 for a single
	// contributor, 1/k for k equal contributors
	Herfindahl float64 `json:"herfindahl"`
}

// FileChurn is one file's accumulated change activity
type FileChurn struct {
	Filename  string `json:"filename"`
	Touches   int    `json:"touches"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Authors   int    `json:"authors"`
}

// FileCouple is a pair of files that keep changing together
type FileCouple struct {
	FileA     string `json:"file_a"`
	FileB     string `json:"file_b"`
	Cochanges int    `json:"cochanges"`
}

// WordCount is one entry of the commit-message word frequency table
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MessageStats summarizes commit messages
type MessageStats struct {
	Types         map[string]int `json:"types"`
	AverageLength float64        `json:"average_length"`
	MedianLength  float64        `json:"median_length"`
	MergeCommits  int            `json:"merge_commits"`
	TopWords      []WordCount    `json:"top_words"`
}

// SizeBucket is one bar of the commit-size histogram
type SizeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GrowthPoint is one week of the cumulative growth curve
type GrowthPoint struct {
	Week      int64 `json:"week"`
	Additions int   `json:"additions"`
	Deletions int   `json:"deletions"`
	Net       int   `json:"net"`
}

// YearCount is one calendar year's commit count
type YearCount struct {
	Year    int `json:"year"`
	Commits int `json:"commits"`
}

// ExtensionCount is per-extension commit activity
type ExtensionCount struct {
	Extension string `json:"extension"`
	Commits   int    `json:"commits"`
}

// ExtensionLines is per-extension line activity
type ExtensionLines struct {
	Extension string `json:"extension"`
	Lines     int    `json:"lines"`
}

// TimeBreakdown is commit activity along the calendar axes
type TimeBreakdown struct {
	ByWeekday          [7]int           `json:"by_weekday"`
	ByMonth            [12]int          `json:"by_month"`
	ByYear             []YearCount      `json:"by_year"`
	CommitsByExtension []ExtensionCount `json:"commits_by_extension"`
	LinesByExtension   []ExtensionLines `json:"lines_by_extension"`
}

// AnalysisBundle is everything the statistics layer derives from a raw
// bundle. It carries no independent state: rebuild it instead of
// mutating it.
type AnalysisBundle struct {
	Contributors    []Contributor              `json:"contributors"`
	BusFactor       BusFactor                  `json:"bus_factor"`
	FileChurn       []FileChurn                `json:"file_churn"`
	CommitMessages  MessageStats               `json:"commit_messages"`
	CommitSizes     []SizeBucket               `json:"commit_sizes"`
	RepoGrowth      []GrowthPoint              `json:"repo_growth"`
	PunchCard       []aggregate.PunchCardCell  `json:"punch_card"`
	WeeklyActivity  []aggregate.CommitActivity `json:"weekly_activity"`
	Languages       map[string]int             `json:"languages"`
	Times           TimeBreakdown              `json:"times"`
	FileCoupling    []FileCouple               `json:"file_coupling"`
	FirstCommitDate *time.Time                 `json:"first_commit_date,omitempty"`
	RepoAgeDays     int                        `json:"repo_age_days"`
}
