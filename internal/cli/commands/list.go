// quantumcalc list — print the registered cases.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f9-o/quantumcalc/internal/suites"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List the suite's cases in execution order",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			names := suites.QuantumCalc(rt.Log, rt.Constructor).Cases()

			if rt.Flags.JSONOutput {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(names)
			}
			for i, n := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, n)
			}
			return nil
		},
	}
}
