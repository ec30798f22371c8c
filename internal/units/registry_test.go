package units

import (
	"errors"
	"math"
	"testing"

	"github.com/canonica/canonica/internal/model"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	defs := []model.Unit{
		{ID: "U_J", Kind: model.KindEnergy, Mult: 1, Offset: 0},
		{ID: "U_eV", Kind: model.KindEnergy, Mult: 1.602176634e-19, Offset: 0},
		{ID: "U_K", Kind: model.KindTemperature, Mult: 1, Offset: 0},
		{ID: "U_C", Kind: model.KindTemperature, Mult: 1, Offset: 273.15},
	}
	for _, u := range defs {
		if err := r.Register(u); err != nil {
			t.Fatalf("register %s: %v", u.ID, err)
		}
	}
	return r
}

func TestRegistry_DuplicateUnit(t *testing.T) {
	r := testRegistry(t)

	err := r.Register(model.Unit{ID: "U_J", Kind: model.KindEnergy, Mult: 1})
	if err == nil {
		t.Fatal("expected error re-registering U_J")
	}

	var dup *model.DuplicateUnitError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUnitError, got %T: %v", err, err)
	}
	if dup.UnitID != "U_J" {
		t.Errorf("expected offending id U_J, got %q", dup.UnitID)
	}
}

func TestRegistry_UnknownUnit(t *testing.T) {
	r := testRegistry(t)

	_, err := r.ToCanonical("U_missing", 1.0)
	var unknown *model.UnknownUnitError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownUnitError, got %T: %v", err, err)
	}
}

func TestRegistry_RejectsZeroMultiplier(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(model.Unit{ID: "U_bad", Kind: model.KindEnergy, Mult: 0}); err == nil {
		t.Fatal("expected error for zero multiplier")
	}
}

func TestToCanonical_Identity(t *testing.T) {
	r := testRegistry(t)

	// mult=1, offset=0 must be the identity for any value
	for _, x := range []float64{0, 1, -273.15, 8.1871057880e-14, 1e30} {
		got, err := r.ToCanonical("U_J", x)
		if err != nil {
			t.Fatalf("ToCanonical: %v", err)
		}
		if got != x {
			t.Errorf("ToCanonical(U_J, %g) = %g, want identity", x, got)
		}
	}
}

func TestToCanonical_Affine(t *testing.T) {
	r := testRegistry(t)

	// Celsius to Kelvin: 0 degC == 273.15 K
	got, err := r.ToCanonical("U_C", 0)
	if err != nil {
		t.Fatalf("ToCanonical: %v", err)
	}
	if got != 273.15 {
		t.Errorf("ToCanonical(U_C, 0) = %g, want 273.15", got)
	}

	// -273.15 degC == 0 K exactly
	got, err = r.ToCanonical("U_C", -273.15)
	if err != nil {
		t.Fatalf("ToCanonical: %v", err)
	}
	if got != 0 {
		t.Errorf("ToCanonical(U_C, -273.15) = %g, want 0", got)
	}
}

func TestFromCanonical_RoundTrip(t *testing.T) {
	r := testRegistry(t)

	for _, id := range []string{"U_J", "U_eV", "U_K", "U_C"} {
		for _, x := range []float64{0, 1, -5.5, 1234.5678} {
			canonical, err := r.ToCanonical(id, x)
			if err != nil {
				t.Fatalf("ToCanonical(%s): %v", id, err)
			}
			back, err := r.FromCanonical(id, canonical)
			if err != nil {
				t.Fatalf("FromCanonical(%s): %v", id, err)
			}
			if math.Abs(back-x) > 1e-12*math.Max(1, math.Abs(x)) {
				t.Errorf("round trip %s: %g -> %g -> %g", id, x, canonical, back)
			}
		}
	}
}

func TestSameKind(t *testing.T) {
	r := testRegistry(t)

	same, err := r.SameKind("U_J", "U_eV")
	if err != nil {
		t.Fatalf("SameKind: %v", err)
	}
	if !same {
		t.Error("expected U_J and U_eV to share a kind")
	}

	same, err = r.SameKind("U_J", "U_K")
	if err != nil {
		t.Fatalf("SameKind: %v", err)
	}
	if same {
		t.Error("expected U_J and U_K to differ in kind")
	}

	if _, err := r.SameKind("U_J", "U_missing"); err == nil {
		t.Error("expected error for unknown unit")
	}
}
