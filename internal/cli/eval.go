package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonica/canonica/internal/engine"
	"github.com/canonica/canonica/internal/llm"
	"github.com/canonica/canonica/internal/model"
	"github.com/canonica/canonica/internal/render"
	"github.com/canonica/canonica/internal/tables"
)

var (
	outJSON      string
	outMD        string
	evalTimeout  time.Duration
	defaultTol   float64
	kindMismatch string
	workers      int
	noCache      bool
	narrate      bool
	llmProvider  string
	llmModel     string
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval <tables.yaml>",
	Short: "Build and evaluate a truth model from a YAML tables file",
	Long: `Eval loads the six entity tables (units, constants, instances,
calculations, claims, questions) from a YAML document, validates the
model, evaluates it, and renders the report.

Validation collects every malformed entity before failing; evaluation
errors on one entity never abort unrelated entities.

Example:
  canonica eval model.yaml
  canonica eval model.yaml --json report.json --md report.md
  canonica eval model.yaml --narrate --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

// addEvalFlags registers the shared output/engine/narration flags. The
// demo command reuses them; only one of the two commands runs per
// invocation, so sharing the backing variables is safe.
func addEvalFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "write JSON report to this path")
	cmd.Flags().StringVar(&outMD, "md", "", "write Markdown report to this path")
	cmd.Flags().DurationVar(&evalTimeout, "timeout", time.Minute, "overall evaluation timeout")

	cmd.Flags().Float64Var(&defaultTol, "tolerance", -1, "default tolerance for claims that omit one (negative: use config)")
	cmd.Flags().StringVar(&kindMismatch, "kind-mismatch", "", "cross-kind comparison policy: error or warn")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel evaluation workers (0: use config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the canonical-value cache")

	cmd.Flags().BoolVar(&narrate, "narrate", false, "attach LLM narration to the report")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "narration provider")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "narration model name")
}

func init() {
	rootCmd.AddCommand(evalCmd)
	addEvalFlags(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	snapshot, err := tables.Load(args[0])
	if err != nil {
		return err
	}
	return evaluateSnapshot(snapshot)
}

// evaluateSnapshot builds, evaluates, optionally narrates, and renders one
// snapshot. Shared by eval and demo.
func evaluateSnapshot(snapshot model.Tables) error {
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	cfg := effectiveConfig()
	if defaultTol >= 0 {
		cfg.Engine.DefaultTolerance = defaultTol
	}
	if kindMismatch != "" {
		cfg.Engine.KindMismatch = model.KindMismatchPolicy(kindMismatch)
	}
	if workers > 0 {
		cfg.Engine.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if narrate {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Model: %s\n", snapshot.Title)
		fmt.Fprintf(os.Stderr, "Tables: %d units, %d constants, %d instances, %d calculations, %d claims, %d questions\n",
			len(snapshot.Units), len(snapshot.Constants), len(snapshot.Instances),
			len(snapshot.Calculations), len(snapshot.Claims), len(snapshot.Questions))
	}

	m, err := engine.Build(snapshot, cfg)
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintf(os.Stderr, "Model validation failed with %d issue(s):\n", len(verrs))
			for _, issue := range verrs {
				fmt.Fprintf(os.Stderr, "  - %s\n", issue)
			}
			return fmt.Errorf("invalid model")
		}
		return err
	}
	for _, warning := range m.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	report := engine.Evaluate(ctx, m)

	if verbose {
		fmt.Fprintf(os.Stderr, "Claims passing: %d/%d\n", report.Dashboard.ClaimsPassing, report.Dashboard.ClaimsTotal)
		fmt.Fprintf(os.Stderr, "Questions true: %d/%d\n", report.Dashboard.QuestionsTrue, report.Dashboard.QuestionsTotal)
	}

	if narrate {
		if err := llm.Narrate(ctx, cfg.LLM, report); err != nil {
			// Narration is commentary; its failure never suppresses the
			// computed report.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if err := render.Files(report, outJSON, outMD); err != nil {
		return err
	}
	if outJSON == "" && outMD == "" {
		return render.WriteMarkdown(os.Stdout, report)
	}
	return nil
}
