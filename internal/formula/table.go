package formula

import (
	"fmt"

	"github.com/canonica/canonica/internal/model"
)

// Func is a pure function over canonical operand values
type Func func(operands []float64) float64

// Variadic marks a formula accepting any non-zero number of operands
const Variadic = -1

type entry struct {
	arity int
	fn    Func
}

// Table maps formula types to registered pure functions. Adding a new
// physical law means registering a new entry; the evaluator's control flow
// never changes.
type Table struct {
	entries map[string]entry
}

// NewTable creates a table pre-loaded with the builtin formulas
func NewTable() *Table {
	t := &Table{entries: make(map[string]entry)}
	registerBuiltins(t)
	return t
}

// Register adds a formula evaluator under the given type name. Arity is
// the exact operand count, or Variadic for one-or-more.
func (t *Table) Register(name string, arity int, fn Func) error {
	if name == "" {
		return fmt.Errorf("formula name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("formula %q has no function", name)
	}
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("formula %q already registered", name)
	}
	t.entries[name] = entry{arity: arity, fn: fn}
	return nil
}

// Has reports whether a formula type is registered
func (t *Table) Has(name string) bool {
	_, exists := t.entries[name]
	return exists
}

// CheckArity validates an operand count against a formula's declared arity
// without evaluating it. Used by the builder for load-time validation.
func (t *Table) CheckArity(name string, got int) error {
	e, exists := t.entries[name]
	if !exists {
		return &model.UnknownFormulaError{Formula: name}
	}
	if e.arity == Variadic {
		if got < 1 {
			return &model.OperandCountError{Formula: name, Want: 1, Got: got}
		}
		return nil
	}
	if got != e.arity {
		return &model.OperandCountError{Formula: name, Want: e.arity, Got: got}
	}
	return nil
}

// Eval applies the named formula to canonical operands
func (t *Table) Eval(name string, operands []float64) (float64, error) {
	if err := t.CheckArity(name, len(operands)); err != nil {
		return 0, err
	}
	return t.entries[name].fn(operands), nil
}
