package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/canonica/canonica/internal/model"
)

// NewProvider creates a narration provider from configuration. A blank
// provider name means narration is disabled and returns (nil, nil).
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// Narrate attaches generated commentary to a finished report. Failures are
// returned to the caller but never alter the report's computed results; on
// error the report is left without a narration.
func Narrate(ctx context.Context, cfg model.LLMConfig, report *model.EvaluationReport) error {
	provider, err := NewProvider(cfg)
	if err != nil {
		return err
	}
	if provider == nil {
		return nil
	}

	resp, err := provider.Narrate(ctx, NarrateRequest{Report: report})
	if err != nil {
		return fmt.Errorf("narration failed: %w", err)
	}

	report.Narration = &model.Narration{
		Provider: provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
	}
	return nil
}
