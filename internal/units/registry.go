package units

import (
	"fmt"

	"github.com/canonica/canonica/internal/model"
)

// Registry holds the defined units and performs all canonicalization.
// It is populated once during model construction and read-only afterwards;
// every other component routes unit conversion through it.
type Registry struct {
	units map[string]model.Unit
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string]model.Unit),
	}
}

// Register adds a unit definition. Re-defining an id is a load-time error.
func (r *Registry) Register(u model.Unit) error {
	if u.ID == "" {
		return fmt.Errorf("unit id must not be empty")
	}
	if _, exists := r.units[u.ID]; exists {
		return &model.DuplicateUnitError{UnitID: u.ID}
	}
	if u.Mult == 0 {
		return fmt.Errorf("unit %q has zero multiplier", u.ID)
	}
	r.units[u.ID] = u
	return nil
}

// Resolve returns the unit definition for an id
func (r *Registry) Resolve(id string) (model.Unit, error) {
	u, exists := r.units[id]
	if !exists {
		return model.Unit{}, &model.UnknownUnitError{UnitID: id}
	}
	return u, nil
}

// ToCanonical converts a value in the given unit to the canonical base
// unit of its quantity kind: canonical = value*mult + offset. This is the
// single authoritative canonicalization routine.
func (r *Registry) ToCanonical(id string, value float64) (float64, error) {
	u, err := r.Resolve(id)
	if err != nil {
		return 0, err
	}
	return value*u.Mult + u.Offset, nil
}

// FromCanonical inverts ToCanonical: value = (canonical - offset) / mult.
// Used to re-express a canonical quantity in another representation.
func (r *Registry) FromCanonical(id string, canonical float64) (float64, error) {
	u, err := r.Resolve(id)
	if err != nil {
		return 0, err
	}
	return (canonical - u.Offset) / u.Mult, nil
}

// SameKind reports whether two units share a quantity kind and are
// therefore mutually convertible
func (r *Registry) SameKind(idA, idB string) (bool, error) {
	a, err := r.Resolve(idA)
	if err != nil {
		return false, err
	}
	b, err := r.Resolve(idB)
	if err != nil {
		return false, err
	}
	return a.Kind == b.Kind, nil
}

// Kind returns the quantity kind for a unit id
func (r *Registry) Kind(id string) (model.QuantityKind, error) {
	u, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return u.Kind, nil
}

// Len returns the number of registered units
func (r *Registry) Len() int {
	return len(r.units)
}
