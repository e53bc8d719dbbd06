// quantumcalc run — execute the self-check suite and report the results.
package commands

import (
	"regexp"

	"github.com/spf13/cobra"

	"github.com/f9-o/quantumcalc/internal/harness"
	"github.com/f9-o/quantumcalc/internal/report"
	"github.com/f9-o/quantumcalc/internal/suites"
	"github.com/f9-o/quantumcalc/pkg/errs"
)

func NewRunCmd() *cobra.Command {
	var (
		filter    string
		count     int
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the QuantumCalc suite and report pass/fail per case",
		Example: `  quantumcalc run
  quantumcalc run --run '^run'
  quantumcalc run --count 5 --json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			if !cmd.Flags().Changed("run") {
				filter = rt.Config.Run.Filter
			}
			if !cmd.Flags().Changed("count") {
				count = rt.Config.Run.Count
			}
			if count < 1 {
				return errs.Newf(errs.ErrValidation, "run", "--count must be >= 1, got %d", count)
			}

			var re *regexp.Regexp
			if filter != "" {
				var err error
				if re, err = regexp.Compile(filter); err != nil {
					return errs.Wrap(err, errs.ErrValidation, "run.filter").WithResource(filter)
				}
			}

			suite := suites.QuantumCalc(rt.Log, rt.Constructor)
			opts := harness.RunOptions{
				Filter:   re,
				Reporter: report.New(rt.reportFormat(), cmd.OutOrStdout()),
			}

			bad := 0
			for i := 0; i < count; i++ {
				sum := suite.Run(cmd.Context(), opts)
				recordRun(rt, sum, !noHistory)
				if !sum.OK() {
					bad++
				}
			}

			if bad > 0 {
				return errs.Newf(errs.ErrRunFailed, "run", "%d of %d runs did not pass", bad, count).
					WithResource(suite.Name()).
					WithAdvice("re-run with --debug for per-case logs")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "run", "", "Only run cases whose name matches this regexp")
	cmd.Flags().IntVar(&count, "count", 1, "Run the whole suite N times")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this invocation in run history")
	return cmd
}
