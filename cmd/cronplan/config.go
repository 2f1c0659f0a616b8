package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronplan/internal/config"
	"github.com/aatumaykin/cronplan/internal/constants"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and manage cronplan configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file and check for errors.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		if err := config.LoadEnvOptional(envPath); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()
		if errs := cfg.Validate(); len(errs) > 0 {
			fmt.Fprint(out, constants.MsgConfigValidationError)
			for _, e := range errs {
				fmt.Fprintf(out, constants.MsgConfigValidatePrefix, e)
			}
			return fmt.Errorf("%d configuration errors in %s", len(errs), path)
		}

		fmt.Fprintln(out, constants.MsgConfigValid)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
