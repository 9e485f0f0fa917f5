package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/didia-cli/internal/config"
	"github.com/KaramelBytes/didia-cli/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration and process logger
	cfg    *cfgpkg.Global
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "didia",
	Short: "DiDIA-BA: teacher AI adoption diagnostics",
	Long: `DiDIA-BA reads a teacher survey (or generates a demo one), aggregates
adoption, competency and barrier indicators, and recommends a training
intervention for the dominant barrier.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.didia/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	l, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		return err
	}
	logger = l.With(zap.String("command", cmd.Name()))
	logger.Debug("config loaded",
		zap.String("theme", cfg.Theme),
		zap.String("threshold_set", cfg.ThresholdSet))
	return nil
}
