// Package suites builds the harness suites shipped with the binary.
package suites

import (
	"fmt"

	"github.com/stretchr/testify/require"

	"github.com/f9-o/quantumcalc/internal/calc"
	"github.com/f9-o/quantumcalc/internal/core/logger"
	"github.com/f9-o/quantumcalc/internal/harness"
)

// QuantumCalcName is the suite name used in reports and history.
const QuantumCalcName = "quantumcalc"

// Case names, in execution order.
const (
	CaseInitialization = "initialization"
	CaseRunMethod      = "run method"
)

// QuantumCalc returns the self-check suite for calc.QuantumCalc. ctor builds
// the value under test; nil means calc.Construct. Every case calls ctor itself,
// so no instance is shared between cases.
func QuantumCalc(log *logger.Logger, ctor calc.Constructor) *harness.Suite {
	if ctor == nil {
		ctor = calc.Construct
	}
	s := harness.NewSuite(QuantumCalcName, log)

	s.MustAdd(CaseInitialization, func(t *harness.T) error {
		v, err := ctor()
		if err != nil {
			return fmt.Errorf("construct: %w", err)
		}
		require.IsType(t, &calc.QuantumCalc{}, v)
		return nil
	})

	s.MustAdd(CaseRunMethod, func(t *harness.T) error {
		v, err := ctor()
		if err != nil {
			return fmt.Errorf("construct: %w", err)
		}
		r, ok := v.(calc.Runner)
		require.Truef(t, ok, "%T does not implement Run() bool", v)
		require.True(t, r.Run(), "Run() must report true on a fresh instance")
		return nil
	})

	return s
}
