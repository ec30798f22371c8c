package formula

// Builtin formula type names
const (
	MassEnergy = "mass_energy" // E = m*c^2
	Identity   = "identity"    // Pass the single operand through
	Product    = "product"     // Multiply all operands
	Ratio      = "ratio"       // First operand divided by second
	Sum        = "sum"         // Add all operands
	Difference = "difference"  // First operand minus second
)

func registerBuiltins(t *Table) {
	mustRegister(t, MassEnergy, 2, func(ops []float64) float64 {
		return ops[0] * ops[1] * ops[1]
	})
	mustRegister(t, Identity, 1, func(ops []float64) float64 {
		return ops[0]
	})
	mustRegister(t, Product, Variadic, func(ops []float64) float64 {
		p := 1.0
		for _, v := range ops {
			p *= v
		}
		return p
	})
	mustRegister(t, Ratio, 2, func(ops []float64) float64 {
		return ops[0] / ops[1]
	})
	mustRegister(t, Sum, Variadic, func(ops []float64) float64 {
		s := 0.0
		for _, v := range ops {
			s += v
		}
		return s
	})
	mustRegister(t, Difference, 2, func(ops []float64) float64 {
		return ops[0] - ops[1]
	})
}

func mustRegister(t *Table, name string, arity int, fn Func) {
	if err := t.Register(name, arity, fn); err != nil {
		panic(err)
	}
}
