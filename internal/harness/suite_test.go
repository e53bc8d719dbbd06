package harness

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/pkg/errs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder captures reporter callbacks in order.
type recorder struct {
	events  []string
	summary v1.RunSummary
}

func (r *recorder) CaseStarted(name string) { r.events = append(r.events, "start:"+name) }
func (r *recorder) CaseFinished(res v1.CaseResult) { r.events = append(r.events, "end:"+res.Name) }
func (r *recorder) Summary(sum v1.RunSummary) { r.summary = sum }

func pass(*T) error { return nil }

func TestAddValidation(t *testing.T) {
	s := NewSuite("s", nil)
	require.NoError(t, s.Add("a", pass))

	assert.True(t, errs.IsCode(s.Add("", pass), errs.ErrValidation))
	assert.True(t, errs.IsCode(s.Add("b", nil), errs.ErrValidation))
	assert.True(t, errs.IsCode(s.Add("a", pass), errs.ErrValidation))
	assert.Panics(t, func() { s.MustAdd("a", pass) })

	assert.Equal(t, []string{"a"}, s.Cases())
}

func TestOutcomeClassification(t *testing.T) {
	s := NewSuite("classify", nil)
	s.MustAdd("passes", pass)
	s.MustAdd("require fails", func(t *T) error {
		require.True(t, false, "run must be truthy")
		return errors.New("unreachable")
	})
	s.MustAdd("assert fails", func(t *T) error {
		assert.Equal(t, 1, 2)
		return nil
	})
	s.MustAdd("returns error", func(*T) error { return errors.New("construct: boom") })
	s.MustAdd("panics", func(*T) error { panic("boom") })
	s.MustAdd("fails then errors", func(t *T) error {
		assert.True(t, false)
		return errors.New("late fault")
	})

	sum := s.Run(context.Background(), RunOptions{})

	require.Len(t, sum.Results, 6)
	assert.Equal(t, map[string]v1.Outcome{
		"passes":            v1.OutcomePassed,
		"require fails":     v1.OutcomeFailed,
		"assert fails":      v1.OutcomeFailed,
		"returns error":     v1.OutcomeErrored,
		"panics":            v1.OutcomeErrored,
		"fails then errors": v1.OutcomeErrored,
	}, sum.Outcomes())

	assert.Contains(t, sum.Results[1].Reason, "Should be true")
	assert.Contains(t, sum.Results[1].Reason, "run must be truthy")
	assert.NotContains(t, sum.Results[1].Reason, "Error Trace")
	assert.Contains(t, sum.Results[2].Reason, "Not equal")
	assert.Equal(t, "construct: boom", sum.Results[3].Cause)
	assert.Equal(t, "panic: boom", sum.Results[4].Cause)
	assert.Equal(t, "late fault", sum.Results[5].Cause)

	assert.Equal(t, 6, sum.Run)
	assert.Equal(t, 1, sum.Passed)
	assert.Equal(t, 2, sum.Failed)
	assert.Equal(t, 3, sum.Errored)
	assert.False(t, sum.OK())
	assert.NotEmpty(t, sum.ID)
	assert.Equal(t, "classify", sum.Suite)
}

func TestRunsInRegistrationOrderAndReports(t *testing.T) {
	s := NewSuite("order", nil)
	var seen []string
	for _, name := range []string{"c", "a", "b"} {
		name := name
		s.MustAdd(name, func(t *T) error {
			seen = append(seen, t.Name())
			return nil
		})
	}

	rec := &recorder{}
	sum := s.Run(context.Background(), RunOptions{Reporter: rec})

	assert.Equal(t, []string{"c", "a", "b"}, seen)
	assert.Equal(t, []string{"start:c", "end:c", "start:a", "end:a", "start:b", "end:b"}, rec.events)
	assert.Equal(t, sum.ID, rec.summary.ID)
	assert.True(t, sum.OK())
}

func TestFilterSelectsCases(t *testing.T) {
	s := NewSuite("filter", nil)
	s.MustAdd("initialization", pass)
	s.MustAdd("run method", func(*T) error { return errors.New("boom") })

	sum := s.Run(context.Background(), RunOptions{Filter: regexp.MustCompile("^init")})
	assert.Equal(t, 1, sum.Run)
	assert.True(t, sum.OK())
	assert.Equal(t, "initialization", sum.Results[0].Name)
}

func TestCancelledContextErrorsRemainingCases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSuite("cancel", nil)
	s.MustAdd("first", func(*T) error {
		cancel()
		return nil
	})
	ran := false
	s.MustAdd("second", func(*T) error {
		ran = true
		return nil
	})

	sum := s.Run(ctx, RunOptions{})
	assert.False(t, ran)
	assert.Equal(t, 2, sum.Run)
	assert.Equal(t, v1.OutcomePassed, sum.Results[0].Outcome)
	assert.Equal(t, v1.OutcomeErrored, sum.Results[1].Outcome)
	assert.Equal(t, context.Canceled.Error(), sum.Results[1].Cause)
}

func TestRepeatedRunsAreIdentical(t *testing.T) {
	s := NewSuite("repeat", nil)
	s.MustAdd("ok", pass)
	s.MustAdd("bad", func(t *T) error {
		assert.True(t, false)
		return nil
	})

	first := s.Run(context.Background(), RunOptions{})
	for i := 0; i < 3; i++ {
		again := s.Run(context.Background(), RunOptions{})
		assert.Equal(t, first.Outcomes(), again.Outcomes())
		assert.NotEqual(t, first.ID, again.ID)
	}
}

func TestAssertContinuesRequireStops(t *testing.T) {
	var afterAssert, afterRequire bool
	s := NewSuite("s", nil)
	s.MustAdd("assert", func(t *T) error {
		assert.Equal(t, 1, 2, "first")
		assert.True(t, false, "second")
		afterAssert = true
		return nil
	})
	s.MustAdd("require", func(t *T) error {
		require.Equal(t, 1, 2, "first")
		afterRequire = true
		return nil
	})

	sum := s.Run(context.Background(), RunOptions{})
	assert.True(t, afterAssert)
	assert.False(t, afterRequire)
	for _, res := range sum.Results {
		assert.Equal(t, v1.OutcomeFailed, res.Outcome, res.Name)
		assert.Contains(t, res.Reason, "Messages: first", res.Name)
		assert.NotContains(t, res.Reason, "Error Trace", res.Name)
	}
}

func TestErr(t *testing.T) {
	ok := v1.RunSummary{Suite: "s"}
	ok.Record(v1.CaseResult{Name: "a", Outcome: v1.OutcomePassed})
	assert.NoError(t, Err(ok))

	bad := ok
	bad.Record(v1.CaseResult{Name: "b", Outcome: v1.OutcomeFailed, Reason: "want 1"})
	bad.Record(v1.CaseResult{Name: "c", Outcome: v1.OutcomeErrored, Cause: "panic: boom"})
	err := Err(bad)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrRunFailed))
	assert.Contains(t, err.Error(), "2 of 3 cases did not pass (1 failed, 1 errored)")
	assert.Contains(t, err.Error(), "[ERR-CASE-001] suite.case (b): want 1")
	assert.Contains(t, err.Error(), "[ERR-CASE-002] suite.case (c): panic: boom")
}

func TestCaseErr(t *testing.T) {
	assert.NoError(t, CaseErr(v1.CaseResult{Name: "a", Outcome: v1.OutcomePassed}))

	failed := CaseErr(v1.CaseResult{Name: "b", Outcome: v1.OutcomeFailed, Reason: "want 1"})
	assert.True(t, errs.IsCode(failed, errs.ErrCaseFailed))
	assert.Equal(t, "b", errs.As(failed).Resource)

	errored := CaseErr(v1.CaseResult{Name: "c", Outcome: v1.OutcomeErrored, Cause: "late fault"})
	assert.True(t, errs.IsCode(errored, errs.ErrCaseErrored))
	assert.EqualError(t, errs.As(errored).Cause, "late fault")
}

func TestCompactReason(t *testing.T) {
	raw := "\n\tError Trace:\t/src/a.go:10\n\t            \t/src/b.go:20\n" +
		"\tError:      \tNot equal: \n\t            \texpected: 1\n\t            \tactual  : 2\n" +
		"\tTest:       \trun method\n" +
		"\tMessages:   \tcounts differ\n"

	assert.Equal(t,
		"Error: Not equal:\nexpected: 1\nactual : 2\nMessages: counts differ",
		compactReason(raw))
}
