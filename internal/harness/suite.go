// Package harness registers named test cases and runs them with per-case
// fault isolation. Each case ends as passed, failed (an assertion did not hold)
// or errored (the body returned an error or panicked).
package harness

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/internal/core/logger"
	"github.com/f9-o/quantumcalc/internal/report"
	"github.com/f9-o/quantumcalc/pkg/errs"
)

// CaseFunc is a case body. A non-nil error marks the case errored.
type CaseFunc func(t *T) error

type testCase struct {
	name string
	fn   CaseFunc
}

// Suite is an ordered set of cases. It holds no per-run state, so one Suite
// may be run any number of times.
type Suite struct {
	name  string
	cases []testCase
	log   *logger.Logger
}

// RunOptions controls a single Run.
type RunOptions struct {
	Filter   *regexp.Regexp  // only cases whose name matches run; nil runs all
	Reporter report.Reporter // progress sink; nil disables reporting
}

// NewSuite returns an empty suite.
func NewSuite(name string, log *logger.Logger) *Suite {
	if log == nil {
		log = logger.Nop()
	}
	return &Suite{name: name, log: log}
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Add registers a case. Registration order is execution order.
func (s *Suite) Add(name string, fn CaseFunc) error {
	if name == "" {
		return errs.Newf(errs.ErrValidation, "suite.add", "case name must not be empty").WithResource(s.name)
	}
	if fn == nil {
		return errs.Newf(errs.ErrValidation, "suite.add", "case %q has no body", name).WithResource(s.name)
	}
	for _, c := range s.cases {
		if c.name == name {
			return errs.Newf(errs.ErrValidation, "suite.add", "duplicate case %q", name).WithResource(s.name)
		}
	}
	s.cases = append(s.cases, testCase{name: name, fn: fn})
	return nil
}

// MustAdd is Add for fixed registrations; it panics on a registration error.
func (s *Suite) MustAdd(name string, fn CaseFunc) {
	if err := s.Add(name, fn); err != nil {
		panic(err)
	}
}

// Cases returns the registered case names in order.
func (s *Suite) Cases() []string {
	names := make([]string, len(s.cases))
	for i, c := range s.cases {
		names[i] = c.name
	}
	return names
}

// Run executes the selected cases sequentially on the calling goroutine.
// A failing or faulting case never stops the run. Once ctx is done, the
// remaining cases are recorded as errored so the counts stay complete.
func (s *Suite) Run(ctx context.Context, opts RunOptions) v1.RunSummary {
	rep := opts.Reporter
	if rep == nil {
		rep = report.Discard
	}

	sum := v1.RunSummary{
		ID:        uuid.NewString(),
		Suite:     s.name,
		StartedAt: time.Now().UTC(),
		Results:   []v1.CaseResult{},
	}
	s.log.Debug("suite run started", "suite", s.name, "run_id", sum.ID)

	for _, c := range s.cases {
		if opts.Filter != nil && !opts.Filter.MatchString(c.name) {
			continue
		}

		var res v1.CaseResult
		if err := ctx.Err(); err != nil {
			res = v1.CaseResult{
				Name:      c.name,
				Outcome:   v1.OutcomeErrored,
				Cause:     err.Error(),
				StartedAt: time.Now().UTC(),
			}
		} else {
			rep.CaseStarted(c.name)
			res = s.runCase(ctx, c)
		}

		s.logResult(res)
		sum.Record(res)
		rep.CaseFinished(res)
	}

	sum.CompletedAt = time.Now().UTC()
	sum.DurationMS = sum.CompletedAt.Sub(sum.StartedAt).Milliseconds()
	rep.Summary(sum)

	s.log.Info("suite run finished",
		"suite", s.name,
		"run_id", sum.ID,
		"run", sum.Run,
		"passed", sum.Passed,
		"failed", sum.Failed,
		"errored", sum.Errored,
	)
	return sum
}

// runCase executes one case body and classifies its outcome.
func (s *Suite) runCase(ctx context.Context, c testCase) v1.CaseResult {
	t := newT(ctx, c.name, s.log)
	start := time.Now()

	fault := invoke(t, c.fn)

	res := v1.CaseResult{
		Name:       c.name,
		StartedAt:  start.UTC(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	switch {
	case fault != nil:
		res.Outcome = v1.OutcomeErrored
		res.Cause = fault.Error()
		res.Reason = t.reason()
	case t.Failed():
		res.Outcome = v1.OutcomeFailed
		res.Reason = t.reason()
	default:
		res.Outcome = v1.OutcomePassed
	}
	return res
}

// invoke calls fn, converting a returned error or a foreign panic into a fault.
// The FailNow sentinel is not a fault.
func invoke(t *T, fn CaseFunc) (fault error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(stopCase); ok {
			return
		}
		fault = fmt.Errorf("panic: %v", r)
	}()
	return fn(t)
}

func (s *Suite) logResult(res v1.CaseResult) {
	if res.Outcome == v1.OutcomePassed {
		s.log.Debug("case passed", "suite", s.name, "case", res.Name, "duration_ms", res.DurationMS)
		return
	}
	s.log.Warn("case did not pass", "suite", s.name, "case", res.Name, "err", CaseErr(res))
}

// CaseErr converts a non-passing result into an ErrCaseFailed or ErrCaseErrored
// error carrying its reason or cause, or nil for a passed case.
func CaseErr(res v1.CaseResult) error {
	switch res.Outcome {
	case v1.OutcomeFailed:
		return errs.Newf(errs.ErrCaseFailed, "suite.case", "%s", res.Reason).WithResource(res.Name)
	case v1.OutcomeErrored:
		return errs.Newf(errs.ErrCaseErrored, "suite.case", "%s", res.Cause).WithResource(res.Name)
	}
	return nil
}

// Err converts a non-OK summary into an ErrRunFailed error joining the
// per-case errors, or nil.
func Err(sum v1.RunSummary) error {
	if sum.OK() {
		return nil
	}
	var cases []error
	for _, res := range sum.Results {
		if err := CaseErr(res); err != nil {
			cases = append(cases, err)
		}
	}
	return errs.New(errs.ErrRunFailed, "suite.run", fmt.Errorf(
		"%d of %d cases did not pass (%d failed, %d errored): %w",
		sum.Failed+sum.Errored, sum.Run, sum.Failed, sum.Errored, errors.Join(cases...),
	)).WithResource(sum.Suite)
}
