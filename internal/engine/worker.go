package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	gogit "github.com/go-git/go-git/v6"

	"github.com/gitpulse/gitpulse/internal/aggregate"
	"github.com/gitpulse/gitpulse/internal/github"
	ingest "github.com/gitpulse/gitpulse/internal/ingest/git"
)

// cloneFunc and resolveFunc exist so tests can run the worker against an
// in-memory repository instead of the network.
type cloneFunc func(ctx context.Context, url string, opts ingest.CloneOptions) (*gogit.Repository, error)

type resolveFunc func(ctx context.Context, owner, name, token string) (string, error)

// Worker runs the whole acquisition and diff pipeline in its own
// goroutine. It communicates with the caller only through the event
// channel: the in-memory object store it owns never crosses that
// boundary, and the result bundle is handed over as a serialized
// snapshot.
type Worker struct {
	logger  *log.Logger
	clone   cloneFunc
	resolve resolveFunc
}

// NewWorker creates a worker with the default transport stack
func NewWorker(logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine"})
	}
	return &Worker{
		logger:  logger,
		clone:   ingest.Clone,
		resolve: resolveCloneURL,
	}
}

func resolveCloneURL(ctx context.Context, owner, name, token string) (string, error) {
	repo, err := github.ResolveRepository(ctx, github.NewClient(token), owner, name)
	if err != nil {
		return "", err
	}
	return repo.CloneURL, nil
}

// Run processes a single request and returns its ordered event stream.
// The channel is closed after the terminal event. Mid-run cancellation is
// not supported: abandoning ctx stops event delivery, not the run's
// internal completion.
func (w *Worker) Run(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, 16)

	go func() {
		defer close(events)

		bundle, err := w.run(ctx, req, events)
		if err != nil {
			events <- Event{Err: err.Error()}
			return
		}

		snapshot, err := snapshotBundle(bundle)
		if err != nil {
			events <- Event{Err: fmt.Sprintf("failed to snapshot result: %v", err)}
			return
		}
		events <- Event{Result: snapshot}
	}()

	return events
}

func (w *Worker) run(ctx context.Context, req Request, events chan<- Event) (*aggregate.RawDataBundle, error) {
	slug := req.Owner + "/" + req.Name
	progress := func(step string, percent int, message string) {
		events <- Event{Progress: &Progress{Step: step, Percent: percent, Message: message}}
	}

	progress(StepCloning, 0, "Resolving "+slug)
	url, err := w.resolve(ctx, req.Owner, req.Name, req.Token)
	if err != nil {
		// Metadata lookup is best-effort; the canonical URL still works
		// for public repositories.
		w.logger.Warn("failed to resolve repository metadata", "repo", slug, "err", err)
		url = fmt.Sprintf("https://github.com/%s/%s.git", req.Owner, req.Name)
	}

	progress(StepCloning, 5, "Cloning "+slug)
	repo, err := w.clone(ctx, url, ingest.CloneOptions{ProxyURL: req.ProxyURL, Token: req.Token})
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}
	defer w.release(slug, repo)

	progress(StepExtractingCommits, 20, "Extracting commit history")
	commits, err := ingest.FirstParentHistory(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to extract history: %w", err)
	}

	budget := req.FullDiffBudget
	if budget <= 0 {
		budget = FullDiffBudget
	}
	sampled := SampleIndices(len(commits), budget)

	details := DiffBatches(ctx, repo, commits, sampled, func(done, total int) {
		percent := 25
		if total > 0 {
			percent += 65 * done / total
		}
		progress(StepExtractingDetails, percent,
			fmt.Sprintf("Diffing commits (%d/%d)", done, total))
	})
	if dropped := len(commits) - len(details); dropped > 0 {
		w.logger.Warn("dropped commits with unreadable diffs", "repo", slug, "count", dropped)
	}

	progress(StepComputingStats, 92, "Counting lines and languages")
	census, err := ingest.Census(repo)
	if err != nil {
		// A failed census degrades the bundle, it does not fail the run
		w.logger.Warn("failed to census HEAD tree", "repo", slug, "err", err)
		census = nil
	}

	progress(StepComputingStats, 97, "Aggregating weekly activity")
	return aggregate.Build(commits, details, census), nil
}

// release drops the worker's hold on the run's in-memory object store.
// Failures here are logged and never escalated; they must not block
// result delivery.
func (w *Worker) release(slug string, repo *gogit.Repository) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Warn("failed to release object store", "repo", slug, "panic", r)
		}
	}()

	if repo == nil {
		return
	}
	if err := repo.DeleteRemote("origin"); err != nil {
		w.logger.Debug("failed to drop remote during teardown", "repo", slug, "err", err)
	}
	w.logger.Debug("released in-memory object store", "repo", slug)
}

// snapshotBundle deep-copies the bundle through its JSON form, so no live
// reference into the worker's object store escapes to the caller
func snapshotBundle(bundle *aggregate.RawDataBundle) (*aggregate.RawDataBundle, error) {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return nil, err
	}

	var snapshot aggregate.RawDataBundle
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
