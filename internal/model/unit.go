package model

// QuantityKind groups units that are mutually convertible
type QuantityKind string

const (
	KindEnergy      QuantityKind = "energy"
	KindTemperature QuantityKind = "temperature"
	KindMass        QuantityKind = "mass"
	KindSpeed       QuantityKind = "speed"
	KindCharge      QuantityKind = "charge"
)

// Unit defines a named unit and its affine conversion to the canonical
// base unit of its quantity kind: canonical = value*Mult + Offset
type Unit struct {
	ID            string       `json:"id" yaml:"id"`                                           // Stable identifier (e.g., "U_J", "U_eV")
	Name          string       `json:"name,omitempty" yaml:"name,omitempty"`                   // Human-readable name (e.g., "joule")
	Kind          QuantityKind `json:"kind" yaml:"kind"`                                       // Quantity kind (energy, temperature, ...)
	CanonicalName string       `json:"canonical_name,omitempty" yaml:"canonical_name,omitempty"` // Name of the canonical base unit (e.g., "J")
	Mult          float64      `json:"mult" yaml:"mult"`                                       // Multiplier to canonical
	Offset        float64      `json:"offset" yaml:"offset"`                                   // Additive offset to canonical (temperature scales)
	SourceURL     string       `json:"source_url,omitempty" yaml:"source_url,omitempty"`       // Authority for the conversion factor
}
