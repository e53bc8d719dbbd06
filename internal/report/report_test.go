package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/f9-o/quantumcalc/api/v1"
)

func sampleSummary() v1.RunSummary {
	s := v1.RunSummary{ID: "run-1", Suite: "quantumcalc", StartedAt: time.Unix(0, 0).UTC(), DurationMS: 3}
	s.Record(v1.CaseResult{Name: "initialization", Outcome: v1.OutcomePassed})
	s.Record(v1.CaseResult{Name: "run method", Outcome: v1.OutcomeFailed, Reason: "Error: Should be true"})
	s.Record(v1.CaseResult{Name: "extra", Outcome: v1.OutcomeErrored, Cause: "panic: boom"})
	return s
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)
	sum := sampleSummary()

	r.CaseStarted("initialization")
	for _, res := range sum.Results {
		r.CaseFinished(res)
	}
	r.Summary(sum)

	out := buf.String()
	assert.Contains(t, out, "=== RUN   initialization")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Error: Should be true")
	assert.Contains(t, out, "panic: boom")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "ran 3, passed 1, failed 1, errored 1 in 3ms")
}

func TestTextReporterOK(t *testing.T) {
	var buf bytes.Buffer
	sum := v1.RunSummary{Suite: "quantumcalc"}
	sum.Record(v1.CaseResult{Name: "initialization", Outcome: v1.OutcomePassed})

	NewText(&buf).Summary(sum)
	assert.Contains(t, buf.String(), "OK")
	assert.NotContains(t, buf.String(), "FAILED")
}

func TestJSONReporterEmitsSummaryOnly(t *testing.T) {
	var buf bytes.Buffer
	r := New("json", &buf)

	r.CaseStarted("initialization")
	r.CaseFinished(v1.CaseResult{Name: "initialization", Outcome: v1.OutcomePassed})
	assert.Zero(t, buf.Len())

	r.Summary(sampleSummary())

	var got v1.RunSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, 3, got.Run)
	assert.Equal(t, v1.OutcomeErrored, got.Results[2].Outcome)
	assert.False(t, got.OK())
}

func TestNewDefaultsToText(t *testing.T) {
	assert.IsType(t, &Text{}, New("text", &bytes.Buffer{}))
	assert.IsType(t, &Text{}, New("", &bytes.Buffer{}))
}
