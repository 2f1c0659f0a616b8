package main

import (
	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/runner"
)

var (
	configPath  string
	envPath     string
	crontabUser string
	logLevel    string
	logFormat   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cronplan",
	Short: "cronplan - crontab jobs from a plan file",
	Long: `cronplan compiles human-readable schedules like "1.day" at "12:00"
into cron lines and keeps them in a named block of your crontab,
next to entries managed by hand or by other plans.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", constants.DefaultConfigPath, "Path to configuration file")
	flags.StringVar(&envPath, "env-file", constants.DefaultEnvPath, "Path to .env file loaded before the configuration")
	flags.StringVarP(&crontabUser, "user", "u", "", "Crontab owner (overrides plan file and config)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&logFormat, "log-format", "", "Log format: json, text (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(quickstartCmd)
	for _, mode := range runner.Modes {
		rootCmd.AddCommand(newModeCmd(mode))
	}
}
