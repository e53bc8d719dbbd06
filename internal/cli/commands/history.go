// quantumcalc history — show recorded suite runs.
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/internal/core/logger"
	"github.com/f9-o/quantumcalc/pkg/errs"
	"github.com/f9-o/quantumcalc/pkg/pprint"
)

func NewHistoryCmd() *cobra.Command {
	var (
		limit int
		last  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded suite runs, newest first",
		Example: `  quantumcalc history
  quantumcalc history --limit 3 --json
  quantumcalc history --last`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			if rt.State == nil {
				return errs.Newf(errs.ErrStateRead, "history", "run history is disabled").
					WithAdvice("set history.enabled: true in quantumcalc.yaml")
			}

			if last {
				return showLastRun(cmd, rt)
			}

			runs, err := rt.State.ListRuns(limit)
			if err != nil {
				return err
			}

			if rt.Flags.JSONOutput {
				if runs == nil {
					runs = []v1.RunSummary{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				pprint.Info("No runs recorded yet. Try: quantumcalc run")
				return nil
			}

			pprint.Header("Run history")
			tbl := pprint.NewTable("STARTED", "ID", "RUN", "PASSED", "FAILED", "ERRORED", "RESULT")
			for _, r := range runs {
				tbl.AddRow(
					r.StartedAt.Local().Format(time.DateTime),
					shortID(r.ID),
					fmt.Sprint(r.Run),
					fmt.Sprint(r.Passed),
					fmt.Sprint(r.Failed),
					fmt.Sprint(r.Errored),
					runResult(r),
				)
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to show (0 = all)")
	cmd.Flags().BoolVar(&last, "last", false, "Show the per-case results of the most recent run")
	return cmd
}

// showLastRun prints the newest stored run case by case.
func showLastRun(cmd *cobra.Command, rt *Runtime) error {
	run, err := rt.State.LastRun()
	if err != nil {
		return err
	}

	if rt.Flags.JSONOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}
	if run == nil {
		pprint.Info("No runs recorded yet. Try: quantumcalc run")
		return nil
	}

	pprint.Header("Last run")
	pprint.KV("ID       ", run.ID)
	pprint.KV("Started  ", run.StartedAt.Local().Format(time.DateTime))
	pprint.KV("Duration ", fmt.Sprintf("%dms", run.DurationMS))
	pprint.KV("Result   ", runResult(*run))
	fmt.Fprintln(pprint.Out)

	tbl := pprint.NewTable("CASE", "OUTCOME", "DETAIL")
	for _, res := range run.Results {
		detail := res.Cause
		if detail == "" {
			detail = res.Reason
		}
		if i := strings.IndexByte(detail, '\n'); i >= 0 {
			detail = detail[:i]
		}
		tbl.AddRow(res.Name, string(res.Outcome), detail)
	}
	tbl.Render()
	return nil
}

func runResult(r v1.RunSummary) string {
	if r.OK() {
		return "ok"
	}
	return "FAILED"
}

// recordRun audits a completed run and, when persist is set and history is
// enabled, stores it and prunes old entries. Store errors are logged, never returned.
func recordRun(rt *Runtime, sum v1.RunSummary, persist bool) {
	result := "success"
	if !sum.OK() {
		result = "failure"
	}
	rt.Log.Audit(logger.AuditEntry{
		Timestamp: sum.CompletedAt,
		Op:        "run",
		User:      logger.CurrentUser(),
		Suite:     sum.Suite,
		RunID:     sum.ID,
		Result:    result,
	})

	if !persist || rt.State == nil || !rt.Config.History.Enabled {
		return
	}
	if err := rt.State.PutRun(sum); err != nil {
		rt.Log.Warn("history write failed", "run_id", sum.ID, "err", err)
		return
	}
	if n, err := rt.State.Prune(rt.Config.History.Keep); err != nil {
		rt.Log.Warn("history prune failed", "err", err)
	} else if n > 0 {
		rt.Log.Debug("history pruned", "removed", n)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
