package run

import "time"

// State is the lifecycle state of a scenario.
type State int

const (
	Pending State = iota
	Running
	Passed
	Failed
	Skipped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Skip/failure reasons recorded on ScenarioResult.Reason.
const (
	ReasonTimeout      = "timeout"
	ReasonRunCancelled = "run-cancelled"
)

// StepStatus is the execution outcome of a single step.
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepFailed
	StepSkipped
)

func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult holds the outcome of one step.
type StepResult struct {
	Keyword  string // verbatim keyword as written in the file
	Text     string
	Status   StepStatus
	Error    string // failure detail; empty for passed/skipped
	Duration time.Duration
}

// ScenarioResult holds the outcome of one scenario.
type ScenarioResult struct {
	Title     string
	State     State
	Reason    string // why skipped, or "timeout"/"run-cancelled" on failure
	Error     string // first failure detail; empty unless Failed
	Steps     []StepResult
	Duration  time.Duration
	StartedAt time.Time
}

// Report is the complete result of a run. Scenario order matches
// declaration order in the document.
type Report struct {
	Feature   string
	Env       string
	Scenarios []ScenarioResult
	StartedAt time.Time
	Duration  time.Duration
}

// Failed reports whether any scenario failed.
func (r *Report) Failed() bool {
	for _, sc := range r.Scenarios {
		if sc.State == Failed {
			return true
		}
	}
	return false
}

// Counts returns the number of passed, failed, and skipped scenarios.
func (r *Report) Counts() (passed, failed, skipped int) {
	for _, sc := range r.Scenarios {
		switch sc.State {
		case Passed:
			passed++
		case Failed:
			failed++
		case Skipped:
			skipped++
		}
	}
	return passed, failed, skipped
}
