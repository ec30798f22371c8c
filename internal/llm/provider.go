package llm

import (
	"context"
	"fmt"

	"github.com/canonica/canonica/internal/model"
)

// Provider defines the interface for narration backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate generates prose commentary on a finished report.
	// CRITICAL: narration happens after evaluation; nothing a provider
	// returns can change a verdict.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)
}

// NarrateRequest carries the finished report and generation settings
type NarrateRequest struct {
	// Report is the fully evaluated report to narrate
	Report *model.EvaluationReport

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// NarrateResponse is the generated commentary
type NarrateResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// BuildPrompt constructs the default narration prompt. The instructions
// keep the LLM descriptive: verdicts are already computed and must be
// restated, never re-derived or second-guessed.
func BuildPrompt(report *model.EvaluationReport) string {
	prompt := fmt.Sprintf(`You are narrating the results of a canonical-truth evaluation. The engine has already computed every verdict; your job is to explain them, not to recompute or dispute them.

RULES:
1. Restate the computed verdicts exactly as given below.
2. Do not invent claims, constants, or numbers not listed.
3. If a claim or question shows an error, say it could not be evaluated and why; never guess whether it would have passed.
4. Distinguish constructed truths (true by definition) from reality-constrained invariants where the claim types indicate it.

Model: %s
Claims passing: %d of %d (%d errored)
Questions true: %d of %d (%d errored)

Claims:
`,
		report.Title,
		report.Dashboard.ClaimsPassing, report.Dashboard.ClaimsTotal, report.Dashboard.ClaimsErrored,
		report.Dashboard.QuestionsTrue, report.Dashboard.QuestionsTotal, report.Dashboard.QuestionsErrored)

	for _, c := range report.Claims {
		if c.Error != "" {
			prompt += fmt.Sprintf("- %s [%s] ERROR: %s\n", c.ID, c.Type, c.Error)
			continue
		}
		prompt += fmt.Sprintf("- %s [%s] pass=%v spread=%.3e tolerance=%.3e: %s\n",
			c.ID, c.Type, c.Pass, c.Spread, c.Tolerance, c.Text)
	}

	prompt += "\nQuestions:\n"
	for _, q := range report.Questions {
		if q.Error != "" {
			prompt += fmt.Sprintf("- %s ERROR: %s\n", q.ID, q.Error)
			continue
		}
		prompt += fmt.Sprintf("- %s answer=%v: %s\n", q.ID, q.Answer, q.Text)
	}

	prompt += "\nWrite a 4-6 sentence narration of these results."
	return prompt
}
