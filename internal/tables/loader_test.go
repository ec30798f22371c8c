package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/canonica/canonica/internal/model"
)

const sampleDoc = `
title: Temperature agreement
units:
  - id: U_K
    kind: temperature
    mult: 1
    offset: 0
  - id: U_C
    kind: temperature
    mult: 1
    offset: 273.15
constants:
  - id: C_abs0
    value: 0
    unit_id: U_K
    layer: defined
instances:
  - id: I_K
    value: 0
    unit_id: U_K
  - id: I_C
    value: -273.15
    unit_id: U_C
  - id: I_derived
    unit_id: U_C
    source:
      kind: constant
      id: C_abs0
claims:
  - id: CL1
    text: both representations agree
    type: invariant
    left:
      kind: instance
      id: I_K
    right:
      kind: instance
      id: I_C
    tolerance: 0
  - id: CL2
    text: tolerance omitted on purpose
    left:
      kind: instance
      id: I_K
    right:
      kind: instance
      id: I_derived
questions:
  - id: Q1
    text: is absolute zero representation-independent?
    mode: all
    claims: [CL1, CL2]
`

func TestParse_FullDocument(t *testing.T) {
	tbl, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(tbl.Units) != 2 || len(tbl.Constants) != 1 || len(tbl.Instances) != 3 ||
		len(tbl.Claims) != 2 || len(tbl.Questions) != 1 {
		t.Fatalf("unexpected table sizes: %+v", tbl)
	}

	if tbl.Units[1].Offset != 273.15 {
		t.Errorf("U_C offset = %g, want 273.15", tbl.Units[1].Offset)
	}
	if tbl.Units[1].Kind != model.KindTemperature {
		t.Errorf("U_C kind = %q", tbl.Units[1].Kind)
	}

	derived := tbl.Instances[2]
	if derived.ObservedValue != nil {
		t.Error("derived instance must not carry a literal value")
	}
	if derived.SourceRef == nil || derived.SourceRef.Kind != model.RefConstant || derived.SourceRef.ID != "C_abs0" {
		t.Errorf("derived source = %+v", derived.SourceRef)
	}

	// Explicit zero tolerance and omitted tolerance must be distinguishable
	if tbl.Claims[0].Tolerance == nil || *tbl.Claims[0].Tolerance != 0 {
		t.Errorf("CL1 tolerance = %v, want explicit 0", tbl.Claims[0].Tolerance)
	}
	if tbl.Claims[1].Tolerance != nil {
		t.Errorf("CL2 tolerance = %v, want nil (defaulted later)", *tbl.Claims[1].Tolerance)
	}

	if tbl.Questions[0].Mode != model.ModeAll {
		t.Errorf("Q1 mode = %q", tbl.Questions[0].Mode)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	doc := `
units:
  - id: U_K
    kind: temperature
    mult: 1
    multiplier: 2
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown field 'multiplier'")
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Title != "Temperature agreement" {
		t.Errorf("title = %q", tbl.Title)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
