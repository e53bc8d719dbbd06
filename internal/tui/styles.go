package tui

import (
	"github.com/charmbracelet/lipgloss"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/pkg/pprint"
)

// Styles are built on the pprint palette so the view and the plain report
// colour outcomes the same way.
type Styles struct {
	Header      lipgloss.Style
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	Detail      lipgloss.Style
	Footer      lipgloss.Style
	FooterKey   lipgloss.Style
	Spinner     lipgloss.Style

	// Outcome colours a result cell; unknown outcomes render muted.
	Outcome map[v1.Outcome]lipgloss.Style
	// Verdict colours the OK/FAILED summary word.
	Verdict map[bool]lipgloss.Style
}

func newStyles() Styles {
	passed := lipgloss.NewStyle().Foreground(pprint.ColorSuccess)
	failed := lipgloss.NewStyle().Foreground(pprint.ColorError)
	errored := lipgloss.NewStyle().Foreground(pprint.ColorWarning)

	return Styles{
		Header:      pprint.StylePrimary.Reverse(true).Padding(0, 1),
		TableHeader: pprint.StyleMuted.Bold(true).Padding(0, 1),
		TableRow:    pprint.StyleText.Padding(0, 1),
		Detail:      pprint.StyleMuted.PaddingLeft(4),
		Footer:      pprint.StyleMuted.Padding(0, 1),
		FooterKey:   pprint.StylePrimary,
		Spinner:     lipgloss.NewStyle().Foreground(pprint.ColorAccent),

		Outcome: map[v1.Outcome]lipgloss.Style{
			v1.OutcomePassed:  passed,
			v1.OutcomeFailed:  failed,
			v1.OutcomeErrored: errored,
		},
		Verdict: map[bool]lipgloss.Style{true: passed.Bold(true), false: failed.Bold(true)},
	}
}

func (s Styles) outcome(o v1.Outcome) lipgloss.Style {
	if st, ok := s.Outcome[o]; ok {
		return st
	}
	return pprint.StyleMuted
}
