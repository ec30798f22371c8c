package resolve

import (
	"errors"
	"math"
	"testing"

	"github.com/canonica/canonica/internal/model"
	"github.com/canonica/canonica/internal/units"
)

func testRegistry(t *testing.T) *units.Registry {
	t.Helper()
	r := units.NewRegistry()
	defs := []model.Unit{
		{ID: "U_J", Kind: model.KindEnergy, Mult: 1},
		{ID: "U_eV", Kind: model.KindEnergy, Mult: 1.602176634e-19},
		{ID: "U_K", Kind: model.KindTemperature, Mult: 1},
		{ID: "U_C", Kind: model.KindTemperature, Mult: 1, Offset: 273.15},
	}
	for _, u := range defs {
		if err := r.Register(u); err != nil {
			t.Fatalf("register %s: %v", u.ID, err)
		}
	}
	return r
}

func TestResolver_Constant(t *testing.T) {
	res := New(testRegistry(t), true)

	c := model.Constant{ID: "C_E", Value: 2.0, UnitID: "U_eV"}
	got, err := res.Constant(c)
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	want := 2.0 * 1.602176634e-19
	if got != want {
		t.Errorf("canonical = %g, want %g", got, want)
	}

	// Second resolution hits the cache and must agree
	again, err := res.Constant(c)
	if err != nil {
		t.Fatalf("Constant (cached): %v", err)
	}
	if again != got {
		t.Errorf("cached value %g differs from first resolution %g", again, got)
	}
}

func TestResolver_UnknownUnit(t *testing.T) {
	res := New(testRegistry(t), true)

	_, err := res.Constant(model.Constant{ID: "C_bad", Value: 1, UnitID: "U_missing"})
	var unknown *model.UnknownUnitError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownUnitError, got %T: %v", err, err)
	}
}

func TestResolver_InstanceLiteral(t *testing.T) {
	res := New(testRegistry(t), false)

	v := -273.15
	i := model.Instance{ID: "I_Tabs0_C", ObservedValue: &v, UnitID: "U_C"}
	got, err := res.InstanceLiteral(i)
	if err != nil {
		t.Fatalf("InstanceLiteral: %v", err)
	}
	if got != 0 {
		t.Errorf("canonical = %g, want 0 (absolute zero)", got)
	}

	if _, err := res.InstanceLiteral(model.Instance{ID: "I_noval", UnitID: "U_K"}); err == nil {
		t.Error("expected error for instance without literal value")
	}
}

func TestResolver_InstanceDerived(t *testing.T) {
	res := New(testRegistry(t), true)

	// Re-express 8.187e-14 J in eV and canonicalize back
	source := 8.1871057880e-14
	i := model.Instance{ID: "I_Ecalc_eV", UnitID: "U_eV"}
	observed, canonical, err := res.InstanceDerived(i, source)
	if err != nil {
		t.Fatalf("InstanceDerived: %v", err)
	}
	wantObserved := source / 1.602176634e-19
	if math.Abs(observed-wantObserved) > 1e-6 {
		t.Errorf("observed = %g eV, want %g", observed, wantObserved)
	}
	if math.Abs(canonical-source) > 1e-25 {
		t.Errorf("canonical = %g, want %g within 1e-25", canonical, source)
	}
}

func TestResolver_CacheDisabled(t *testing.T) {
	res := New(testRegistry(t), false)

	c := model.Constant{ID: "C_c", Value: 299792458, UnitID: "U_J"}
	first, err := res.Constant(c)
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	second, err := res.Constant(c)
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	if first != second {
		t.Errorf("caching must not change results: %g vs %g", first, second)
	}
}
