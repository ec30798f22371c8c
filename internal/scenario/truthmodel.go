// Package scenario ships the built-in truth model: a small set of SI
// units, CODATA constants, and claims probing which truths are constructed
// (definitions, conventions) versus reality-constrained (unit-independent
// invariants like the electron rest energy).
package scenario

import (
	"github.com/canonica/canonica/internal/formula"
	"github.com/canonica/canonica/internal/model"
)

func f64(v float64) *float64 { return &v }

// TruthModel returns the demo snapshot. Constants and conversion factors
// follow NIST CODATA and the BIPM SI brochure.
func TruthModel() model.Tables {
	return model.Tables{
		Title:        "Constructed vs. reality-constrained truth",
		Units:        truthUnits(),
		Constants:    truthConstants(),
		Instances:    truthInstances(),
		Calculations: truthCalculations(),
		Claims:       truthClaims(),
		Questions:    truthQuestions(),
	}
}

func truthUnits() []model.Unit {
	return []model.Unit{
		{ID: "U_J", Name: "joule", Kind: model.KindEnergy, CanonicalName: "J", Mult: 1, Offset: 0,
			SourceURL: "https://www.bipm.org/en/measurement-units"},
		{ID: "U_eV", Name: "electronvolt", Kind: model.KindEnergy, CanonicalName: "J", Mult: 1.602176634e-19, Offset: 0,
			SourceURL: "https://physics.nist.gov/cgi-bin/cuu/Value?evj="},
		{ID: "U_ftlbf", Name: "foot-pound force", Kind: model.KindEnergy, CanonicalName: "J", Mult: 1.3558179483314, Offset: 0,
			SourceURL: "https://www.convertunits.com/from/ft-lbf/to/joule"},
		{ID: "U_K", Name: "kelvin", Kind: model.KindTemperature, CanonicalName: "K", Mult: 1, Offset: 0,
			SourceURL: "https://www.bipm.org/documents/20126/41483022/SI-Brochure-9-concise-EN.pdf"},
		{ID: "U_C", Name: "degree Celsius", Kind: model.KindTemperature, CanonicalName: "K", Mult: 1, Offset: 273.15,
			SourceURL: "https://www.bipm.org/documents/20126/41483022/SI-Brochure-9-concise-EN.pdf"},
		{ID: "U_kg", Name: "kilogram", Kind: model.KindMass, CanonicalName: "kg", Mult: 1, Offset: 0,
			SourceURL: "https://www.bipm.org/en/measurement-units"},
		{ID: "U_mps", Name: "metre per second", Kind: model.KindSpeed, CanonicalName: "m/s", Mult: 1, Offset: 0,
			SourceURL: "https://www.bipm.org/documents/20126/41483022/SI-Brochure-9-EN.pdf"},
		{ID: "U_Coul", Name: "coulomb", Kind: model.KindCharge, CanonicalName: "C", Mult: 1, Offset: 0,
			SourceURL: "https://www.bipm.org/en/measurement-units"},
	}
}

func truthConstants() []model.Constant {
	return []model.Constant{
		{ID: "C_me", Name: "electron mass", Symbol: "m_e", Value: 9.1093837139e-31, UnitID: "U_kg",
			Layer: model.LayerMeasured, SourceURL: "https://physics.nist.gov/cgi-bin/cuu/Value?me=",
			Notes: "From NIST CODATA"},
		{ID: "C_c", Name: "speed of light in vacuum", Symbol: "c", Value: 299792458, UnitID: "U_mps",
			Layer: model.LayerDefined, SourceURL: "https://www.bipm.org/en/measurement-units",
			Notes: "Exact by SI definition"},
		{ID: "C_e", Name: "elementary charge", Symbol: "e", Value: 1.602176634e-19, UnitID: "U_Coul",
			Layer: model.LayerDefined, SourceURL: "https://www.bipm.org/en/measurement-units",
			Notes: "Exact by SI definition"},
		{ID: "C_mec2", Name: "electron mass energy equivalent", Symbol: "m_e c^2", Value: 8.1871057880e-14, UnitID: "U_J",
			Layer: model.LayerMeasured, SourceURL: "https://physics.nist.gov/cgi-bin/cuu/Value?mec2",
			Notes: "Reference value to validate E=mc^2"},
		{ID: "C_abs0", Name: "absolute zero (thermodynamic)", Symbol: "0 K", Value: 0, UnitID: "U_K",
			Layer: model.LayerDefined, SourceURL: "https://www.bipm.org/documents/20126/41483022/SI-Brochure-9-concise-EN.pdf",
			Notes: "0 K is absolute zero on the Kelvin scale"},
		{ID: "C_eV_J", Name: "electronvolt in joules", Symbol: "eV", Value: 1.602176634e-19, UnitID: "U_J",
			Layer: model.LayerDefined, SourceURL: "https://physics.nist.gov/cgi-bin/cuu/Convert?From=ev&To=j",
			Notes: "1 eV = e joules; constructed via the SI definitions of e and the volt"},
	}
}

func truthInstances() []model.Instance {
	return []model.Instance{
		{ID: "I_Ecalc_J", Topic: "ElectronRestEnergy", Quantity: "E (calc)", UnitID: "U_J",
			SourceRef: &model.Ref{Kind: model.RefCalculation, ID: "F_Ecalc"},
			Notes:     "Computed rest energy expressed in joules"},
		{ID: "I_Ecalc_eV", Topic: "ElectronRestEnergy", Quantity: "E (calc)", UnitID: "U_eV",
			SourceRef: &model.Ref{Kind: model.RefCalculation, ID: "F_Ecalc"},
			Notes:     "Same energy re-expressed in electronvolts"},
		{ID: "I_Ecalc_ftlbf", Topic: "ElectronRestEnergy", Quantity: "E (calc)", UnitID: "U_ftlbf",
			SourceRef: &model.Ref{Kind: model.RefCalculation, ID: "F_Ecalc"},
			Notes:     "Same energy re-expressed in foot-pounds"},
		{ID: "I_Eexpected_J", Topic: "ElectronRestEnergy", Quantity: "E (CODATA)", UnitID: "U_J",
			SourceRef: &model.Ref{Kind: model.RefConstant, ID: "C_mec2"},
			Notes:     "Reference constant as an instance"},
		{ID: "I_Tabs0_K", Topic: "AbsoluteZero", Quantity: "T absolute", ObservedValue: f64(0), UnitID: "U_K",
			Notes: "0 kelvin"},
		{ID: "I_Tabs0_C", Topic: "AbsoluteZero", Quantity: "T absolute", ObservedValue: f64(-273.15), UnitID: "U_C",
			Notes: "Celsius representation of absolute zero"},
	}
}

func truthCalculations() []model.Calculation {
	return []model.Calculation{
		{ID: "F_Ecalc", Name: "Electron rest energy from E=mc^2", Formula: formula.MassEnergy,
			OperandIDs: []string{"C_me", "C_c"}, ReferenceID: "C_mec2", Tolerance: f64(1e-22),
			Notes: "Uses constants C_me and C_c"},
		{ID: "F_eV_to_J", Name: "eV to J conversion", Formula: formula.Identity,
			OperandIDs: []string{"C_e"}, ReferenceID: "C_eV_J", Tolerance: f64(0),
			Notes: "The conversion derives from defined constants, so it must match exactly"},
	}
}

func truthClaims() []model.Claim {
	return []model.Claim{
		{ID: "CL1", Text: "Electron rest energy is invariant across units (J, eV, ft-lbf).",
			Type:  model.ClaimInvariant,
			Left:  model.Ref{Kind: model.RefInstance, ID: "I_Ecalc_J"},
			Right: model.Ref{Kind: model.RefInstance, ID: "I_Ecalc_eV"},
			ExtraRefs: []model.Ref{
				{Kind: model.RefInstance, ID: "I_Ecalc_ftlbf"},
			},
			Tolerance: f64(1e-25)},
		{ID: "CL2", Text: "E = m c^2 (using m_e and c) matches CODATA m_e c^2 within tolerance.",
			Type:      model.ClaimInvariant,
			Left:      model.Ref{Kind: model.RefInstance, ID: "I_Ecalc_J"},
			Right:     model.Ref{Kind: model.RefInstance, ID: "I_Eexpected_J"},
			Tolerance: f64(1e-22)},
		{ID: "CL3", Text: "0 K and -273.15 degC represent the same absolute temperature.",
			Type:      model.ClaimMixed,
			Left:      model.Ref{Kind: model.RefInstance, ID: "I_Tabs0_K"},
			Right:     model.Ref{Kind: model.RefInstance, ID: "I_Tabs0_C"},
			Tolerance: f64(1e-9)},
		{ID: "CL4", Text: "1 eV equals e joules (constructed via the SI definition of e and the volt).",
			Type:      model.ClaimConstructed,
			Left:      model.Ref{Kind: model.RefCalculation, ID: "F_eV_to_J"},
			Right:     model.Ref{Kind: model.RefConstant, ID: "C_eV_J"},
			Tolerance: f64(0)},
	}
}

func truthQuestions() []model.Question {
	return []model.Question{
		{ID: "Q0", Text: "Are some truths in the model constructed (true because defined)?",
			Mode: model.ModeAll, ClaimIDs: []string{"CL4"},
			Explanation: "True if the definitional check (CL4) passes."},
		{ID: "Q1", Text: "Are there consistent truths that don't come from construction (unit-independent invariants)?",
			Mode: model.ModeAny, ClaimIDs: []string{"CL1", "CL2", "CL3"},
			Explanation: "True if at least one reality-constrained invariant claim passes."},
		{ID: "Q2", Text: "Does changing the measurement system (J vs ft-lbf vs eV) change the underlying electron rest energy?",
			Mode: model.ModeNone, ClaimIDs: []string{"CL1"},
			Explanation: "False when CL1 passes: the energy is invariant after conversion."},
		{ID: "Q3", Text: "Does E=mc^2 hold as long as appropriate conversions are done?",
			Mode: model.ModeAll, ClaimIDs: []string{"CL2"},
			Explanation: "True if CL2 passes."},
		{ID: "Q4", Text: "Is 0 K the same temperature as -273.15 degC (after conversion)?",
			Mode: model.ModeAll, ClaimIDs: []string{"CL3"},
			Explanation: "True if CL3 passes."},
		{ID: "Q5", Text: "Is reality the constraining source of truth for invariants in this model?",
			Mode: model.ModeAny, ClaimIDs: []string{"CL1", "CL2", "CL3"},
			Explanation: "Conventions set the coordinates (units); reality constrains what fits."},
	}
}
