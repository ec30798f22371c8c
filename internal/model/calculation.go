package model

// Calculation derives a canonical value by applying a named pure formula to
// canonicalized constant operands, and compares the result against a
// canonicalized reference constant within a tolerance.
type Calculation struct {
	ID          string   `json:"id" yaml:"id"`                                   // Stable identifier (e.g., "F_Ecalc")
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`           // Human-readable name
	Formula     string   `json:"formula" yaml:"formula"`                         // Registered formula type (e.g., "mass_energy")
	OperandIDs  []string `json:"operands" yaml:"operands"`                       // Constant ids, in formula argument order
	ReferenceID string   `json:"reference" yaml:"reference"`                     // Constant id holding the expected value
	Tolerance   *float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"` // Absolute tolerance; nil means the configured default
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}
