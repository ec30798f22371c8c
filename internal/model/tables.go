package model

// Tables is the immutable input snapshot for one evaluation run: the six
// entity tables in dependency order. The engine never mutates a snapshot;
// what-if exploration means building and evaluating a fresh one.
type Tables struct {
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Units        []Unit        `json:"units" yaml:"units"`
	Constants    []Constant    `json:"constants" yaml:"constants"`
	Instances    []Instance    `json:"instances" yaml:"instances"`
	Calculations []Calculation `json:"calculations" yaml:"calculations"`
	Claims       []Claim       `json:"claims" yaml:"claims"`
	Questions    []Question    `json:"questions" yaml:"questions"`
}
