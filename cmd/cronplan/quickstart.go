package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/planfile"
)

var (
	quickstartPath  string
	quickstartForce bool
)

// quickstartCmd represents the quickstart command
var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Write a schedule file template",
	Long:  `Write a commented plan file to start from. The format follows the extension (.toml, .yaml, .yml).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, constants.MsgQuickstartWriting, quickstartPath)
		if err := planfile.WriteTemplate(quickstartPath, quickstartForce); err != nil {
			return err
		}
		fmt.Fprintln(out, constants.MsgQuickstartDone)
		return nil
	},
}

func init() {
	quickstartCmd.Flags().StringVarP(&quickstartPath, "path", "p", constants.DefaultPlanPath, "The file path for your schedule file")
	quickstartCmd.Flags().BoolVarP(&quickstartForce, "force", "f", false, "Override an existing file")
}
