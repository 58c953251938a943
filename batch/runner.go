// Package batch sequences fetch, extraction, and structuring across a list
// of job-posting URLs, isolating failures per item and pacing requests.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Akira-YMZK/generator"
)

// DefaultItemDelay is the politeness pause between consecutive URLs. It
// avoids rate limiting and anti-bot defenses on scraped sites and on the
// structuring service; it is not a performance knob.
const DefaultItemDelay = time.Second

// State tracks one URL through the pipeline.
type State int

// Pipeline states. Structured and Degraded are terminal.
const (
	StatePending State = iota
	StateFetched
	StateExtracted
	StateStructured
	StateDegraded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFetched:
		return "fetched"
	case StateExtracted:
		return "extracted"
	case StateStructured:
		return "structured"
	case StateDegraded:
		return "degraded"
	}
	return "unknown"
}

// ProgressEvent reports the terminal state of one URL.
type ProgressEvent struct {
	URL       string
	Completed int
	Total     int
	State     State
	Err       error
}

// ProgressFunc is called once per URL as the batch proceeds.
type ProgressFunc func(ProgressEvent)

// Runner orchestrates the per-URL pipeline. URLs are processed strictly
// sequentially; concurrent requests risk triggering rate limiting on the
// scraped sites and the structuring service.
type Runner struct {
	Fetcher    generator.Fetcher
	Extractor  generator.Extractor
	Structurer generator.Structurer

	// ItemDelay is the pause applied between every pair of consecutive
	// items, including after a failure. Defaults to DefaultItemDelay.
	ItemDelay time.Duration

	Logger   *slog.Logger
	Progress ProgressFunc
}

// Run processes every URL in order and returns exactly one record per URL:
// a full StructuredJob on success, a degraded record on any failure. The
// batch itself never aborts on a per-item error. A cancelled context
// degrades the remaining items instead of shortening the result.
func (r *Runner) Run(ctx context.Context, urls []string) (generator.BatchResult, error) {
	if len(urls) == 0 {
		return nil, generator.Errorf(generator.EINVALID, "at least one URL required")
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	delay := r.ItemDelay
	if delay <= 0 {
		delay = DefaultItemDelay
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	runID := uuid.NewString()
	logger.Info("batch started", "run", runID, "urls", len(urls))

	result := make(generator.BatchResult, 0, len(urls))
	for i, url := range urls {
		var job *generator.StructuredJob
		var state State
		var cause error

		if err := limiter.Wait(ctx); err != nil {
			cause = generator.Errorf(generator.EUNAVAILABLE, "batch cancelled: %v", err)
			job = generator.NewDegradedJob(url, cause, "", time.Now())
			state = StateDegraded
		} else {
			job, state, cause = r.processOne(ctx, url)
		}

		result = append(result, job)

		if state == StateDegraded {
			logger.Warn("batch item degraded", "run", runID, "url", url, "err", generator.ErrorMessage(cause))
		} else {
			logger.Info("batch item structured", "run", runID, "url", url, "title", job.JobTitle)
		}

		if r.Progress != nil {
			r.Progress(ProgressEvent{
				URL:       url,
				Completed: i + 1,
				Total:     len(urls),
				State:     state,
				Err:       cause,
			})
		}
	}

	logger.Info("batch finished", "run", runID, "records", len(result), "degraded", result.DegradedCount())
	return result, nil
}

// processOne runs the Pending -> Fetched -> Extracted -> Structured|Degraded
// state machine for a single URL.
func (r *Runner) processOne(ctx context.Context, url string) (*generator.StructuredJob, State, error) {
	html, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return generator.NewDegradedJob(url, err, "", time.Now()), StateDegraded, err
	}

	raw, err := r.Extractor.Extract(html, url)
	if err != nil {
		return generator.NewDegradedJob(url, err, "", time.Now()), StateDegraded, err
	}

	job, err := r.Structurer.Structure(ctx, raw)
	if err != nil {
		// The page was already fetched; keep its content in the record.
		return generator.NewDegradedJob(url, err, raw.Content, time.Now()), StateDegraded, err
	}

	return job, StateStructured, nil
}
