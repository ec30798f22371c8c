package model

// SourceLayer records whether a constant is exact by convention or empirical
type SourceLayer string

const (
	LayerDefined  SourceLayer = "defined"  // Exact by SI definition or scale anchor
	LayerMeasured SourceLayer = "measured" // Empirical (e.g., CODATA adjusted)
)

// Constant is a named physical or defined quantity tagged with a unit.
// The SourceLayer distinction is metadata only; both layers canonicalize
// identically through the unit registry.
type Constant struct {
	ID        string      `json:"id" yaml:"id"`                                     // Stable identifier (e.g., "C_me", "C_c")
	Name      string      `json:"name,omitempty" yaml:"name,omitempty"`             // Human-readable name
	Symbol    string      `json:"symbol,omitempty" yaml:"symbol,omitempty"`         // Conventional symbol (e.g., "m_e")
	Value     float64     `json:"value" yaml:"value"`                               // Raw value in the tagged unit
	UnitID    string      `json:"unit_id" yaml:"unit_id"`                           // Unit the raw value is expressed in
	Layer     SourceLayer `json:"layer,omitempty" yaml:"layer,omitempty"`           // defined or measured
	SourceURL string      `json:"source_url,omitempty" yaml:"source_url,omitempty"` // Authority for the value
	Notes     string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// RefKind discriminates what table a Ref points into
type RefKind string

const (
	RefInstance    RefKind = "instance"    // An Instance's canonical value
	RefCalculation RefKind = "calculation" // A Calculation's canonical result
	RefConstant    RefKind = "constant"    // A Constant's canonical value
)

// Ref is a typed reference to an entity that resolves to a canonical value
type Ref struct {
	Kind RefKind `json:"kind" yaml:"kind"`
	ID   string  `json:"id" yaml:"id"`
}

// IsZero reports whether the ref is unset
func (r Ref) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Instance is one concrete expression of a quantity in a particular
// representation. Its value is either a literal ObservedValue or, when
// SourceRef is set, the referenced entity's canonical value converted into
// this instance's unit. Exactly one of the two must be present.
type Instance struct {
	ID            string   `json:"id" yaml:"id"`                                 // Stable identifier (e.g., "I_Ecalc_eV")
	Topic         string   `json:"topic,omitempty" yaml:"topic,omitempty"`       // Scenario grouping (e.g., "ElectronRestEnergy")
	Quantity      string   `json:"quantity,omitempty" yaml:"quantity,omitempty"` // Quantity label (e.g., "E (calc)")
	ObservedValue *float64 `json:"value,omitempty" yaml:"value,omitempty"`       // Literal value in UnitID
	UnitID        string   `json:"unit_id" yaml:"unit_id"`                       // Representation unit
	SourceRef     *Ref     `json:"source,omitempty" yaml:"source,omitempty"`     // Derive value from another entity instead of a literal
	Notes         string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}
