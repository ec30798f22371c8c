package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/canonica/canonica/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "canonica",
	Short: "Canonica - canonical-truth evaluation engine",
	Long: `Canonica evaluates models of measurement claims. It canonicalizes
values tagged with units into a single reference representation, derives
quantities from canonicalized constants, and reduces representation-
invariance and law-agreement assertions to explicit boolean answers.

Every verdict is computed; nothing defaults to TRUE or FALSE, and claims
or questions whose inputs cannot be resolved report errors instead of
guesses.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("canonica v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.canonica/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.canonica")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CANONICA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// effectiveConfig merges defaults with config-file and env settings.
// Hierarchy (highest to lowest): CLI flags, CANONICA_* env vars, config
// file, built-in defaults. Flags are applied by the individual commands.
func effectiveConfig() model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("engine.default_tolerance") {
		cfg.Engine.DefaultTolerance = viper.GetFloat64("engine.default_tolerance")
	}
	if viper.IsSet("engine.kind_mismatch") {
		cfg.Engine.KindMismatch = model.KindMismatchPolicy(viper.GetString("engine.kind_mismatch"))
	}
	if viper.IsSet("engine.workers") {
		cfg.Engine.Workers = viper.GetInt("engine.workers")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	cfg.Output.Verbose = verbose

	return cfg
}
