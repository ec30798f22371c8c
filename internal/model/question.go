package model

// AggregateMode selects how a question reduces its claims to one boolean
type AggregateMode string

const (
	ModeAll  AggregateMode = "all"  // True iff every claim passes (logical AND)
	ModeAny  AggregateMode = "any"  // True iff at least one claim passes (logical OR)
	ModeNone AggregateMode = "none" // True iff no claim passes (logical NOR)
)

// Question is a named boolean aggregation over a non-empty set of claims.
// An empty claim set is rejected at build time; it is never vacuously true.
type Question struct {
	ID          string        `json:"id" yaml:"id"`                               // Stable identifier (e.g., "Q1")
	Text        string        `json:"text" yaml:"text"`                           // The question being answered
	Mode        AggregateMode `json:"mode,omitempty" yaml:"mode,omitempty"`       // Aggregation mode; empty means "all"
	ClaimIDs    []string      `json:"claims" yaml:"claims"`                       // Referenced claims, in order
	Explanation string        `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// EffectiveMode returns the aggregation mode, defaulting to ModeAll
func (q Question) EffectiveMode() AggregateMode {
	if q.Mode == "" {
		return ModeAll
	}
	return q.Mode
}
