package model

import "time"

// ValueResult is the canonicalization outcome for one Constant or Instance.
// Canonical is meaningful only when Error is empty.
type ValueResult struct {
	ID        string  `json:"id"`
	Canonical float64 `json:"canonical"`
	Error     string  `json:"error,omitempty"`
}

// CalculationResult holds a Calculation's derived fields
type CalculationResult struct {
	ID              string  `json:"id"`
	Formula         string  `json:"formula"`
	Result          float64 `json:"result"`
	Reference       float64 `json:"reference"`
	AbsError        float64 `json:"abs_error"`
	Tolerance       float64 `json:"tolerance"`
	WithinTolerance bool    `json:"within_tolerance"`
	Error           string  `json:"error,omitempty"`
}

// ClaimResult holds a Claim's derived fields. Values lists the resolved
// canonical values in the claim's reference order; Spread is max-min over
// them (absolute difference for the two-value case).
type ClaimResult struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      ClaimType `json:"type,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Spread    float64   `json:"spread"`
	Tolerance float64   `json:"tolerance"`
	Pass      bool      `json:"pass"`
	Error     string    `json:"error,omitempty"`
}

// QuestionResult holds a Question's derived answer
type QuestionResult struct {
	ID     string        `json:"id"`
	Text   string        `json:"text"`
	Mode   AggregateMode `json:"mode"`
	Answer bool          `json:"answer"`
	Error  string        `json:"error,omitempty"`
}

// Dashboard aggregates headline counters over the whole report
type Dashboard struct {
	ClaimsPassing    int `json:"claims_passing"`
	ClaimsTotal      int `json:"claims_total"`
	ClaimsErrored    int `json:"claims_errored,omitempty"`
	QuestionsTrue    int `json:"questions_true"`
	QuestionsTotal   int `json:"questions_total"`
	QuestionsErrored int `json:"questions_errored,omitempty"`
}

// Narration is an optional LLM-generated commentary on a finished report.
// CRITICAL: narration never feeds back into evaluation; verdicts are fixed
// before it is produced.
type Narration struct {
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// EvaluationReport is the complete derived output for one snapshot
type EvaluationReport struct {
	Title       string    `json:"title,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`

	Constants    []ValueResult       `json:"constants"`
	Instances    []ValueResult       `json:"instances"`
	Calculations []CalculationResult `json:"calculations"`
	Claims       []ClaimResult       `json:"claims"`
	Questions    []QuestionResult    `json:"questions"`

	Warnings  []string  `json:"warnings,omitempty"`
	Dashboard Dashboard `json:"dashboard"`

	Narration *Narration `json:"narration,omitempty"`
}

// ConstantValue returns a constant's canonical value by id
func (r *EvaluationReport) ConstantValue(id string) (float64, bool) {
	return lookupValue(r.Constants, id)
}

// InstanceValue returns an instance's canonical value by id
func (r *EvaluationReport) InstanceValue(id string) (float64, bool) {
	return lookupValue(r.Instances, id)
}

// Calculation returns the result record for a calculation id
func (r *EvaluationReport) Calculation(id string) (CalculationResult, bool) {
	for _, c := range r.Calculations {
		if c.ID == id {
			return c, true
		}
	}
	return CalculationResult{}, false
}

// ClaimPass returns a claim's pass verdict by id; ok is false for unknown
// ids and for claims that errored
func (r *EvaluationReport) ClaimPass(id string) (pass, ok bool) {
	for _, c := range r.Claims {
		if c.ID == id {
			return c.Pass, c.Error == ""
		}
	}
	return false, false
}

// QuestionAnswer returns a question's answer by id; ok is false for unknown
// ids and for questions that errored
func (r *EvaluationReport) QuestionAnswer(id string) (answer, ok bool) {
	for _, q := range r.Questions {
		if q.ID == id {
			return q.Answer, q.Error == ""
		}
	}
	return false, false
}

func lookupValue(values []ValueResult, id string) (float64, bool) {
	for _, v := range values {
		if v.ID == id {
			return v.Canonical, v.Error == ""
		}
	}
	return 0, false
}
