package model

// KindMismatchPolicy controls how a claim comparing different quantity
// kinds is handled at build time
type KindMismatchPolicy string

const (
	KindMismatchReject KindMismatchPolicy = "error" // Reject the model
	KindMismatchWarn   KindMismatchPolicy = "warn"  // Record a warning, evaluate anyway
)

// Config holds all engine and CLI settings
type Config struct {
	Engine EngineConfig `json:"engine" yaml:"engine"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Output OutputConfig `json:"output" yaml:"output"`
	LLM    LLMConfig    `json:"llm" yaml:"llm"`
}

// EngineConfig holds evaluation settings
type EngineConfig struct {
	// DefaultTolerance is substituted when a claim or calculation omits
	// its tolerance. Tolerance 0 demands exact equality and must be set
	// explicitly; omission never means 0.
	DefaultTolerance float64 `json:"default_tolerance" yaml:"default_tolerance"`

	// KindMismatch selects whether cross-kind claim comparisons are a
	// hard validation error or a recorded warning.
	KindMismatch KindMismatchPolicy `json:"kind_mismatch" yaml:"kind_mismatch"`

	// Workers bounds parallel evaluation within one topological level.
	Workers int `json:"workers" yaml:"workers"`
}

// CacheConfig holds resolver cache settings
type CacheConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// LLMConfig holds optional narration settings. Narration never affects
// evaluation results.
type LLMConfig struct {
	Provider          string  `json:"provider,omitempty" yaml:"provider,omitempty"` // "openai" or "" (disabled)
	Model             string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey            string  `json:"-" yaml:"-"`
	BaseURL           string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSeconds    int     `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTokens         int     `json:"max_tokens" yaml:"max_tokens"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			DefaultTolerance: 1e-9,
			KindMismatch:     KindMismatchReject,
			Workers:          4,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Verbose: false,
		},
		LLM: LLMConfig{
			Provider:          "",
			TimeoutSeconds:    30,
			MaxTokens:         1000,
			RequestsPerSecond: 1,
		},
	}
}
