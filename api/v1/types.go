// Package v1 defines the public data types shared across all QuantumCalc layers.
package v1

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Outcome enumeration
// ─────────────────────────────────────────────────────────────────────────────

// Outcome is the tagged result of a single test case.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"  // an assertion did not hold
	OutcomeErrored Outcome = "errored" // unexpected fault: returned error or panic
)

// ─────────────────────────────────────────────────────────────────────────────
// Result types (persisted in BoltDB, emitted as JSON)
// ─────────────────────────────────────────────────────────────────────────────

// CaseResult is the recorded outcome of one test case.
type CaseResult struct {
	Name       string    `json:"name"`
	Outcome    Outcome   `json:"outcome"`
	Reason     string    `json:"reason,omitempty"` // set when Outcome == failed
	Cause      string    `json:"cause,omitempty"`  // set when Outcome == errored
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// RunSummary aggregates every CaseResult of one suite run.
type RunSummary struct {
	ID          string       `json:"id"`
	Suite       string       `json:"suite"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt time.Time    `json:"completed_at"`
	DurationMS  int64        `json:"duration_ms"`
	Results     []CaseResult `json:"results"`
	Run         int          `json:"run"`
	Passed      int          `json:"passed"`
	Failed      int          `json:"failed"`
	Errored     int          `json:"errored"`
}

// OK reports whether every case in the run passed.
func (s RunSummary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// Record appends r and updates the counters.
func (s *RunSummary) Record(r CaseResult) {
	s.Results = append(s.Results, r)
	s.Run++
	switch r.Outcome {
	case OutcomePassed:
		s.Passed++
	case OutcomeFailed:
		s.Failed++
	default:
		s.Errored++
	}
}

// Outcomes returns the per-case outcomes keyed by case name.
func (s RunSummary) Outcomes() map[string]Outcome {
	out := make(map[string]Outcome, len(s.Results))
	for _, r := range s.Results {
		out[r.Name] = r.Outcome
	}
	return out
}
