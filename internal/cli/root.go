// Package cli defines the root Cobra command and global flag/context setup.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f9-o/quantumcalc/internal/calc"
	"github.com/f9-o/quantumcalc/internal/cli/commands"
	"github.com/f9-o/quantumcalc/internal/core/config"
	"github.com/f9-o/quantumcalc/internal/core/logger"
	"github.com/f9-o/quantumcalc/internal/core/state"
	"github.com/f9-o/quantumcalc/pkg/errs"
	"github.com/f9-o/quantumcalc/pkg/pprint"
)

// globalFlags holds values bound to persistent global flags.
type globalFlags struct {
	configFile string
	debug      bool
	jsonOutput bool
}

// root owns the command tree and the runtime it builds, so Run can release it.
type root struct {
	cmd   *cobra.Command
	flags globalFlags
	rt    *commands.Runtime
}

func newRoot() *root {
	r := &root{}
	runCmd := commands.NewRunCmd()

	r.cmd = &cobra.Command{
		Use:           "quantumcalc",
		Short:         "QuantumCalc: construct, run and verify the QuantumCalc object",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		// Bare `quantumcalc` behaves like `quantumcalc run` with defaults.
		RunE: func(cmd *cobra.Command, args []string) error {
			runCmd.SetContext(cmd.Context())
			runCmd.SetOut(cmd.OutOrStdout())
			return runCmd.RunE(runCmd, nil)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}
			return r.initRuntime(cmd)
		},
	}

	pf := r.cmd.PersistentFlags()
	pf.StringVarP(&r.flags.configFile, "config", "c", "", "Path to quantumcalc.yaml (defaults to auto-discovery)")
	pf.BoolVar(&r.flags.debug, "debug", false, "Enable debug-level logging to stderr")
	pf.BoolVar(&r.flags.jsonOutput, "json", false, "Output in machine-readable JSON")

	origHelp := r.cmd.HelpFunc()
	r.cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		pprint.PrintBanner(commands.Version, commands.BuildDate)
		origHelp(cmd, args)
	})

	r.cmd.AddCommand(
		runCmd,
		commands.NewListCmd(),
		commands.NewHistoryCmd(),
		commands.NewUICmd(),
		commands.NewInitCmd(),
		commands.NewVersionCmd(),
	)
	return r
}

// initRuntime loads config, logger, and state before each command runs.
func (r *root) initRuntime(cmd *cobra.Command) error {
	cfg, err := config.Load(r.flags.configFile)
	if err != nil {
		return errs.Wrap(err, errs.ErrConfig, "config.load").
			WithAdvice("check quantumcalc.yaml and QCALC_* environment variables")
	}

	home := config.Home()
	if err := os.MkdirAll(home, 0750); err != nil {
		return errs.Wrap(err, errs.ErrInternal, "runtime.home").WithResource(home).
			WithAdvice("set QCALC_HOME to a writable directory")
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(home, "logs", "quantumcalc.log")
	}
	log, err := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		LogFile: logFile,
		Home:    home,
		Debug:   r.flags.debug,
	})
	if err != nil {
		return errs.Wrap(err, errs.ErrInternal, "runtime.logger").WithResource(logFile).
			WithAdvice("check log.file in quantumcalc.yaml")
	}

	var db *state.DB
	if cfg.History.Enabled {
		db, err = state.Open(filepath.Join(home, "state.db"))
		if err != nil {
			return err
		}
	}

	r.rt = &commands.Runtime{
		Config: cfg,
		Log:    log,
		State:  db,
		Flags: commands.GlobalFlags{
			Debug:      r.flags.debug,
			JSONOutput: r.flags.jsonOutput,
		},
		Constructor: calc.Construct,
	}
	cmd.SetContext(commands.NewContext(cmd.Context(), r.rt))
	return nil
}

func (r *root) close() {
	if r.rt != nil && r.rt.State != nil {
		_ = r.rt.State.Close()
	}
}

// Run executes the CLI with args and returns the process exit code:
// 0 when the command succeeded (every case passed), 1 otherwise.
func Run(args []string, stdout, stderr io.Writer) int {
	prevOut, prevErr := pprint.Out, pprint.ErrOut
	pprint.Out, pprint.ErrOut = stdout, stderr
	defer func() { pprint.Out, pprint.ErrOut = prevOut, prevErr }()

	r := newRoot()
	defer r.close()

	r.cmd.SetArgs(args)
	r.cmd.SetOut(stdout)
	r.cmd.SetErr(stderr)

	if err := r.cmd.Execute(); err != nil {
		e := errs.As(err)
		if e == nil {
			e = errs.Wrap(err, errs.ErrUnknown, r.cmd.Name())
		}
		pprint.Error("%s", e.UserMessage())
		return 1
	}
	return 0
}

// Execute runs the CLI against the process arguments and exits. Called by main().
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
