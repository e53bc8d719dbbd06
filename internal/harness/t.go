package harness

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/f9-o/quantumcalc/internal/core/logger"
)

// stopCase is the panic value FailNow uses to unwind a case body.
type stopCase struct{}

// T is handed to every case body. It satisfies testify's assert.TestingT and
// require.TestingT, so case bodies use the assert and require packages directly.
// A T belongs to exactly one case execution.
type T struct {
	ctx     context.Context
	name    string
	log     *logger.Logger
	failed  bool
	reasons []string
}

func newT(ctx context.Context, name string, log *logger.Logger) *T {
	return &T{ctx: ctx, name: name, log: log}
}

// Name returns the running case's name.
func (t *T) Name() string { return t.name }

// Context returns the run's context.
func (t *T) Context() context.Context { return t.ctx }

// Helper is a no-op; it lets testify treat T like *testing.T.
func (t *T) Helper() {}

// Errorf records an assertion failure and lets the case continue.
func (t *T) Errorf(format string, args ...any) {
	t.failed = true
	t.reasons = append(t.reasons, compactReason(fmt.Sprintf(format, args...)))
}

// FailNow stops the case immediately. Any failure recorded so far is kept.
func (t *T) FailNow() {
	t.failed = true
	panic(stopCase{})
}

// Fatalf records a failure and stops the case.
func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)
	t.FailNow()
}

// Logf writes a debug line tagged with the case name.
func (t *T) Logf(format string, args ...any) {
	t.log.Debug(fmt.Sprintf(format, args...), "case", t.name)
}

// Failed reports whether any assertion has failed.
func (t *T) Failed() bool { return t.failed }

// reason is the first recorded failure, which is what the report shows.
func (t *T) reason() string {
	if len(t.reasons) == 0 {
		if t.failed {
			return "FailNow called"
		}
		return ""
	}
	return t.reasons[0]
}

// labelRe matches the start of a labelled block in testify's failure text.
var labelRe = regexp.MustCompile(`^\s*([A-Z][a-z]+(?: [A-Z][a-z]+)?):`)

// compactReason drops testify's "Error Trace" block and collapses indentation,
// keeping the "Error" (expected vs actual) and "Messages" blocks.
func compactReason(msg string) string {
	var out []string
	inTrace := false
	for _, line := range strings.Split(msg, "\n") {
		if m := labelRe.FindStringSubmatch(line); m != nil {
			inTrace = m[1] == "Error Trace" || m[1] == "Test"
		}
		if inTrace {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
