// quantumcalc init — scaffold a new quantumcalc.yaml in the target directory.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f9-o/quantumcalc/internal/core/config"
	"github.com/f9-o/quantumcalc/pkg/errs"
	"github.com/f9-o/quantumcalc/pkg/pprint"
)

func NewInitCmd() *cobra.Command {
	var (
		targetPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new quantumcalc.yaml in the current (or specified) directory",
		Example: `  quantumcalc init
  quantumcalc init --path ./my-project --force`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if targetPath == "" {
				targetPath = "."
			}
			outFile := filepath.Join(targetPath, config.ProjectFile)
			if _, err := os.Stat(outFile); err == nil {
				if !force {
					return errs.Newf(errs.ErrConfig, "init", "%s already exists", outFile).
						WithAdvice("pass --force to overwrite it")
				}
				pprint.Warn("Overwriting existing %s", outFile)
			}

			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("create dir %q: %w", targetPath, err)
			}

			if err := os.WriteFile(outFile, []byte(config.DefaultConfigTemplate), 0644); err != nil {
				return fmt.Errorf("write %s: %w", config.ProjectFile, err)
			}

			pprint.Success("Created %s", outFile)
			pprint.Info("Then run: quantumcalc run")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", ".", "Target directory for quantumcalc.yaml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing quantumcalc.yaml")
	return cmd
}
