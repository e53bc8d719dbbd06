// Package report renders suite progress and run summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/pkg/pprint"
)

// Reporter receives suite progress. Calls arrive sequentially from the running goroutine.
type Reporter interface {
	CaseStarted(name string)
	CaseFinished(res v1.CaseResult)
	Summary(sum v1.RunSummary)
}

type discard struct{}

func (discard) CaseStarted(string) {}
func (discard) CaseFinished(v1.CaseResult) {}
func (discard) Summary(v1.RunSummary) {}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

// New returns the Reporter for a report.format value: "json" or anything else for text.
func New(format string, w io.Writer) Reporter {
	if format == "json" {
		return NewJSON(w)
	}
	return NewText(w)
}

// ─────────────────────────────────────────────────────────────────────────────
// Text
// ─────────────────────────────────────────────────────────────────────────────

// Text writes one styled line per case and a summary panel.
type Text struct {
	w io.Writer
}

// NewText returns a text Reporter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (r *Text) CaseStarted(name string) {
	fmt.Fprintln(r.w, pprint.StyleMuted.Render("=== RUN   "+name))
}

func (r *Text) CaseFinished(res v1.CaseResult) {
	var tag string
	switch res.Outcome {
	case v1.OutcomePassed:
		tag = pprint.StyleSuccess.Render("✓ PASS ")
	case v1.OutcomeFailed:
		tag = pprint.StyleError.Render("✗ FAIL ")
	default:
		tag = pprint.StyleWarning.Render("! ERROR")
	}
	fmt.Fprintf(r.w, "%s %s %s\n", tag, pprint.StyleText.Render(res.Name),
		pprint.StyleMuted.Render(fmt.Sprintf("(%dms)", res.DurationMS)))

	for _, detail := range []string{res.Cause, res.Reason} {
		for _, line := range strings.Split(detail, "\n") {
			if line != "" {
				fmt.Fprintln(r.w, pprint.StyleMuted.Render("    "+line))
			}
		}
	}
}

func (r *Text) Summary(sum v1.RunSummary) {
	status := pprint.StyleSuccess.Render("OK")
	if !sum.OK() {
		status = pprint.StyleError.Render("FAILED")
	}
	body := fmt.Sprintf("%s  ran %d, passed %d, failed %d, errored %d in %dms",
		status, sum.Run, sum.Passed, sum.Failed, sum.Errored, sum.DurationMS)
	pprint.Panel(r.w, sum.Suite, body)
}

// ─────────────────────────────────────────────────────────────────────────────
// JSON
// ─────────────────────────────────────────────────────────────────────────────

// JSON writes the RunSummary as one indented JSON document when the run ends.
type JSON struct {
	w io.Writer
}

// NewJSON returns a JSON Reporter writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (r *JSON) CaseStarted(string) {}
func (r *JSON) CaseFinished(v1.CaseResult) {}

func (r *JSON) Summary(sum v1.RunSummary) {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(sum)
}
