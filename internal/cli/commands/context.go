// Package commands provides the shared context type and all CLI subcommands.
package commands

import (
	"context"

	"github.com/f9-o/quantumcalc/internal/calc"
	"github.com/f9-o/quantumcalc/internal/core/config"
	"github.com/f9-o/quantumcalc/internal/core/logger"
	"github.com/f9-o/quantumcalc/internal/core/state"
)

// contextKey is the key type for values stored in a command context.
type contextKey string

const runtimeContextKey contextKey = "quantumcalc.runtime"

// GlobalFlags holds the parsed global flags for use by subcommands.
type GlobalFlags struct {
	Debug      bool
	JSONOutput bool
}

// Runtime is the shared dependency bundle injected into each subcommand via context.
type Runtime struct {
	Config      *config.Config
	Log         *logger.Logger
	State       *state.DB // nil when history is disabled
	Flags       GlobalFlags
	Constructor calc.Constructor
}

// NewContext returns a new context carrying the Runtime.
func NewContext(parent context.Context, rt *Runtime) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, runtimeContextKey, rt)
}

// FromContext extracts the Runtime from ctx. Panics if not present (programming error).
func FromContext(ctx context.Context) *Runtime {
	if ctx != nil {
		if rt, ok := ctx.Value(runtimeContextKey).(*Runtime); ok && rt != nil {
			return rt
		}
	}
	panic("quantumcalc: Runtime not found in context, missing PersistentPreRunE?")
}

// reportFormat resolves the effective report format; --json wins over config.
func (rt *Runtime) reportFormat() string {
	if rt.Flags.JSONOutput {
		return "json"
	}
	return rt.Config.Report.Format
}
