// quantumcalc ui — run the suite in the interactive results view.
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/internal/harness"
	"github.com/f9-o/quantumcalc/internal/suites"
	"github.com/f9-o/quantumcalc/internal/tui"
	"github.com/f9-o/quantumcalc/pkg/errs"
)

func NewUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ui",
		Short:        "Run the suite in an interactive view (r re-runs, q quits)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			filter, err := rt.Config.FilterRegexp()
			if err != nil {
				return err
			}
			suite := suites.QuantumCalc(rt.Log, rt.Constructor)

			app := tui.New(tui.Config{
				Ctx:      cmd.Context(),
				Suite:    suite,
				Options:  harness.RunOptions{Filter: filter},
				OnResult: func(sum v1.RunSummary) { recordRun(rt, sum, true) },
			})

			p := tea.NewProgram(app,
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}

			return uiResult(app.Summary())
		},
	}
	return cmd
}

// uiResult maps the view's last summary to the command error. Quitting before
// any run finished means no case passed.
func uiResult(sum v1.RunSummary, finished bool) error {
	if !finished {
		return errs.Newf(errs.ErrRunFailed, "ui", "run aborted before any case finished").
			WithAdvice("wait for the results or use: quantumcalc run")
	}
	return harness.Err(sum)
}
