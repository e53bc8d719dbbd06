// Package calc holds QuantumCalc, the object exercised by the self-check suite.
package calc

// QuantumCalc carries no state. Its Run operation reports readiness only.
type QuantumCalc struct {
	// Ensures distinct allocations: pointers to zero-size values may be equal.
	_ byte
}

// Runner is the capability the run-method case checks for.
type Runner interface {
	Run() bool
}

// Constructor builds a target value. Faulty constructors are how the harness
// is exercised against construction errors.
type Constructor func() (any, error)

// New returns a fresh QuantumCalc. It never fails.
func New() *QuantumCalc {
	return &QuantumCalc{}
}

// Construct is the default Constructor.
func Construct() (any, error) {
	return New(), nil
}

// Run reports success for any constructed QuantumCalc.
func (q *QuantumCalc) Run() bool {
	return q != nil
}
