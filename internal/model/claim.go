package model

// ClaimType categorizes the nature of the claim. The type is descriptive
// metadata; it never changes the comparison rule.
type ClaimType string

const (
	ClaimInvariant   ClaimType = "invariant"   // Reality-constrained, unit-independent quantity
	ClaimConstructed ClaimType = "constructed" // True by definition or convention
	ClaimMixed       ClaimType = "mixed"       // Scale anchor plus physical constraint
)

// Claim is an atomic boolean test comparing canonical values within an
// absolute tolerance. Left and Right are required; ExtraRefs adds further
// representations to the comparison, in which case the test becomes
// max-min <= tolerance over all resolved values (identical to
// |left-right| <= tolerance when there are exactly two).
type Claim struct {
	ID        string    `json:"id" yaml:"id"`                                   // Stable identifier (e.g., "CL1")
	Text      string    `json:"text" yaml:"text"`                               // The claim statement
	Type      ClaimType `json:"type,omitempty" yaml:"type,omitempty"`           // Descriptive classification
	Left      Ref       `json:"left" yaml:"left"`                               // First compared value
	Right     Ref       `json:"right" yaml:"right"`                             // Second compared value
	ExtraRefs []Ref     `json:"extra,omitempty" yaml:"extra,omitempty"`         // Additional representations (optional)
	Tolerance *float64  `json:"tolerance,omitempty" yaml:"tolerance,omitempty"` // Absolute tolerance; nil means the configured default
}

// Refs returns all compared references in declaration order
func (c Claim) Refs() []Ref {
	refs := make([]Ref, 0, 2+len(c.ExtraRefs))
	refs = append(refs, c.Left, c.Right)
	refs = append(refs, c.ExtraRefs...)
	return refs
}
