package engine

import "github.com/gitpulse/gitpulse/internal/aggregate"

// Progress steps, in the order a run moves through them
const (
	StepCloning           = "cloning"
	StepExtractingCommits = "extracting-commits"
	StepExtractingDetails = "extracting-details"
	StepComputingStats    = "computing-stats"
)

// Request starts one run. A run cannot be re-parameterized mid-flight.
type Request struct {
	Owner    string `json:"repositoryOwner"`
	Name     string `json:"repositoryName"`
	ProxyURL string `json:"transportProxyUrl,omitempty"`

	// Token never crosses a serialization boundary
	Token string `json:"-"`

	// FullDiffBudget overrides the default sampling budget when > 0
	FullDiffBudget int `json:"-"`
}

// Progress is a coarse-grained status update
type Progress struct {
	Step    string `json:"step"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Event is one message from the worker. A run emits any number of
// progress events followed by exactly one terminal event: either Result
// or Err, never both, and never a partial bundle on error.
type Event struct {
	Progress *Progress                `json:"progress,omitempty"`
	Result   *aggregate.RawDataBundle `json:"result,omitempty"`
	Err      string                   `json:"error,omitempty"`
}

// Terminal reports whether the event ends its run
func (e Event) Terminal() bool {
	return e.Result != nil || e.Err != ""
}
