package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/config"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/logging"
)

var logLevel string

// cfg is populated before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "poet",
	Short: "poet generates Gradle module build files from declarative blueprints",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(".")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		cfg = loaded

		level := logLevel
		if level == "" {
			level = cfg.Logging.Level
		}

		if err := logging.Init(level, cfg.Logging.Format); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print usage.
		fmt.Println(cmd.UsageString())
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (e.g. debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
