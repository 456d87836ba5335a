package doctor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps how many checks run at once.
const DefaultConcurrency = 4

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check.
	Category() string

	// Run executes the check. It must honor ctx and never return nil.
	Run(ctx context.Context) *CheckResult
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks      []Check
	concurrency int
	now         func() time.Time
}

// NewRunner creates a runner executing at most concurrency checks at a
// time. Values below 1 use DefaultConcurrency.
func NewRunner(concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Runner{concurrency: concurrency, now: time.Now}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Len returns the number of registered checks.
func (r *Runner) Len() int {
	return len(r.checks)
}

// Run executes all registered checks concurrently and returns a report with
// the results in registration order. A check that panics or returns nil is
// reported as an error result.
func (r *Runner) Run(ctx context.Context) *DoctorReport {
	report := &DoctorReport{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, len(r.checks)),
	}

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for i, check := range r.checks {
		g.Go(func() error {
			report.Results[i] = runOne(ctx, check)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range report.Results {
		report.Summary.add(res.Status)
	}
	report.Duration = r.now().UTC().Sub(report.Timestamp)
	return report
}

func runOne(ctx context.Context, check Check) (res *CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			res = &CheckResult{
				Name:     check.Name(),
				Category: check.Category(),
				Status:   SeverityError,
				Message:  fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()

	res = check.Run(ctx)
	if res == nil {
		res = &CheckResult{
			Name:     check.Name(),
			Category: check.Category(),
			Status:   SeverityError,
			Message:  "check returned no result",
		}
	}
	return res
}

// DoctorReport aggregates all check results with timing and summary.
type DoctorReport struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Duration is the wall time of the whole run.
	Duration time.Duration `json:"duration_ns"`

	// Results contains the outcome of each check in registration order.
	Results []*CheckResult `json:"results"`

	Summary Summary `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
