package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/canonica/canonica/internal/model"
)

func sampleReport() *model.EvaluationReport {
	return &model.EvaluationReport{
		Title: "Truth model",
		Claims: []model.ClaimResult{
			{ID: "CL1", Text: "energy is invariant", Type: model.ClaimInvariant,
				Spread: 1e-30, Tolerance: 1e-25, Pass: true},
			{ID: "CL2", Text: "broken", Error: "dangling ref"},
		},
		Questions: []model.QuestionResult{
			{ID: "Q1", Text: "do invariants hold?", Mode: model.ModeAny, Answer: true},
		},
		Dashboard: model.Dashboard{
			ClaimsPassing: 1, ClaimsTotal: 2, ClaimsErrored: 1,
			QuestionsTrue: 1, QuestionsTotal: 1,
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleReport())

	for _, want := range []string{
		"Claims passing: 1 of 2 (1 errored)",
		"CL1",
		"pass=true",
		"CL2",
		"ERROR: dangling ref",
		"Q1 answer=true",
		"never guess",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestNewProvider(t *testing.T) {
	// Disabled configuration: no provider, no error
	p, err := NewProvider(model.LLMConfig{})
	if err != nil || p != nil {
		t.Errorf("disabled config: provider=%v err=%v, want nil/nil", p, err)
	}

	// OpenAI without a key is a configuration error
	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error for openai provider without API key")
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "oracle-of-delphi"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNarrate_DisabledLeavesReportUntouched(t *testing.T) {
	report := sampleReport()
	if err := Narrate(context.Background(), model.LLMConfig{}, report); err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if report.Narration != nil {
		t.Error("disabled narration must not attach anything")
	}
	if report.Dashboard.ClaimsPassing != 1 {
		t.Error("narration must never touch computed results")
	}
}
