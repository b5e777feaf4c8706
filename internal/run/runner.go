// Package run executes the scenarios of a parsed document against a step
// registry, one scenario at a time, and produces a report.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gwtool/gwt/internal/feature"
	"github.com/gwtool/gwt/internal/steps"
	"github.com/gwtool/gwt/internal/tags"
)

// Runner drives scenario execution. Scenarios run strictly sequentially in
// declaration order; a single step handler runs at a time. Shared resources
// (e.g. a browser session) belong to the run for its whole duration.
type Runner struct {
	Registry    *steps.Registry
	Env         string        // environment name for tag resolution
	StepTimeout time.Duration // zero means no per-step timeout
	DryRun      bool          // resolve steps without invoking handlers
	Logger      *slog.Logger

	// Before/After let the automation layer reset fixtures around each
	// executed scenario. Not called for skipped scenarios.
	Before func(title string)
	After  func(title string)
}

// Run executes every enabled scenario of doc. Failures are contained per
// scenario; cancelling ctx skips the remaining queue.
func (r *Runner) Run(ctx context.Context, doc *feature.Document) *Report {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	report := &Report{
		Feature:   doc.Name,
		Env:       r.Env,
		StartedAt: time.Now(),
	}

	for i := range doc.Scenarios {
		sc := &doc.Scenarios[i]

		if ctx.Err() != nil {
			report.Scenarios = append(report.Scenarios, ScenarioResult{
				Title:  sc.Title,
				State:  Skipped,
				Reason: ReasonRunCancelled,
			})
			continue
		}

		if enabled, reason := tags.Disposition(sc.Tags, r.Env); !enabled {
			logger.Debug("scenario skipped", "scenario", sc.Title, "reason", reason)
			report.Scenarios = append(report.Scenarios, ScenarioResult{
				Title:  sc.Title,
				State:  Skipped,
				Reason: reason,
			})
			continue
		}

		result := r.runScenario(ctx, logger, sc)
		if result.State == Failed {
			logger.Info("scenario failed", "scenario", sc.Title, "error", result.Error)
		}
		report.Scenarios = append(report.Scenarios, result)
	}

	report.Duration = time.Since(report.StartedAt)
	return report
}

func (r *Runner) runScenario(ctx context.Context, logger *slog.Logger, sc *feature.Scenario) ScenarioResult {
	result := ScenarioResult{
		Title:     sc.Title,
		State:     Running,
		StartedAt: time.Now(),
	}

	if r.Before != nil {
		r.Before(sc.Title)
	}

	failed := false
	for _, st := range sc.Steps {
		if failed {
			result.Steps = append(result.Steps, StepResult{
				Keyword: st.Keyword,
				Text:    st.Text,
				Status:  StepSkipped,
			})
			continue
		}

		logger.Debug("step", "scenario", sc.Title, "keyword", st.Keyword, "text", st.Text)

		match, err := r.Registry.Resolve(st.Text)
		if err != nil {
			failed = true
			result.Error = err.Error()
			result.Steps = append(result.Steps, StepResult{
				Keyword: st.Keyword,
				Text:    st.Text,
				Status:  StepFailed,
				Error:   err.Error(),
			})
			continue
		}

		if r.DryRun {
			result.Steps = append(result.Steps, StepResult{
				Keyword: st.Keyword,
				Text:    st.Text,
				Status:  StepPassed,
			})
			continue
		}

		started := time.Now()
		err = r.invoke(ctx, match)
		elapsed := time.Since(started)

		sr := StepResult{
			Keyword:  st.Keyword,
			Text:     st.Text,
			Status:   StepPassed,
			Duration: elapsed,
		}
		if err != nil {
			failed = true
			sr.Status = StepFailed
			sr.Error = err.Error()
			result.Error = err.Error()
			switch {
			case errors.Is(err, context.DeadlineExceeded):
				result.Reason = ReasonTimeout
			case ctx.Err() != nil:
				result.Reason = ReasonRunCancelled
			}
		}
		result.Steps = append(result.Steps, sr)
	}

	if r.After != nil {
		r.After(sc.Title)
	}

	result.Duration = time.Since(result.StartedAt)
	if failed {
		result.State = Failed
	} else {
		result.State = Passed
	}
	return result
}

// invoke runs one handler as a blocking unit, bounded by the per-step
// timeout. The handler goroutine may outlive a timed-out step; its result
// is discarded.
func (r *Runner) invoke(ctx context.Context, match *steps.Match) error {
	stepCtx := ctx
	if r.StepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, r.StepTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("step panicked: %v", p)
			}
		}()
		done <- match.Handler(stepCtx, match.Args...)
	}()

	select {
	case err := <-done:
		return err
	case <-stepCtx.Done():
		return stepCtx.Err()
	}
}
