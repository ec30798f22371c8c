package cli

import (
	"github.com/spf13/cobra"

	"github.com/canonica/canonica/internal/scenario"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Evaluate the built-in truth model",
	Long: `Demo evaluates the bundled model of constructed versus
reality-constrained truths: SI units, CODATA constants, the electron
rest energy computed via E=mc^2 in three different energy units, and
the claims and questions that probe which truths survive a change of
representation.

All eval output flags apply:
  canonica demo
  canonica demo --json truth.json --md truth.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluateSnapshot(scenario.TruthModel())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addEvalFlags(demoCmd)
}
