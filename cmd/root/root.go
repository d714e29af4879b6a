// Package root contains the root command for the application
package root

import (
	"nmorand/spendsight/internal/config"
	"nmorand/spendsight/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the resolved application configuration, populated
	// before any command runs.
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spendsight",
		Short: "A CLI tool to categorize transactions and surface spending anomalies and insights.",
		Long: `spendsight reads transaction CSV files, assigns each transaction to a
spending category, flags anomalies like spend spikes and recurring price
changes, and produces a plain-language spending report.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spendsight!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Warn("Invalid configuration, using defaults")
				cfg = defaultConfig()
			}
			AppConfig = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			logging.SetDefaultLogger(Log)
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// CSVOutput is the analyze and enhance commands' categorized CSV
	// export path.
	CSVOutput string
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.AI.Model = "gemini-2.0-flash"
	cfg.AI.TimeoutSeconds = 60
	cfg.Data.RulesFile = "rules.yaml"
	cfg.Data.OverridesFile = "overrides.yaml"
	return cfg
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "text", "Report format: text or json")
}
