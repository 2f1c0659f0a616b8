package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronplan/internal/schedule"
)

var compileNext int

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile <every> [at]",
	Short: "Print the cron time fields of a schedule",
	Long: `Compile an every/at pair into the five cron time fields, e.g.

  cronplan compile 1.day 12:00        # 0 12 * * *
  cronplan compile monday hour.3      # 0 3 * * 1
  cronplan compile 2.hour --next 3    # also print the next three runs`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := ""
		if len(args) == 2 {
			at = args[1]
		}

		fields, err := schedule.Compile(args[0], at)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, fields)

		from := time.Now()
		for i := 0; i < compileNext; i++ {
			next, err := schedule.Next(fields, from)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, next.Format(time.RFC1123))
			from = next
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().IntVarP(&compileNext, "next", "n", 0, "Also print the next N run times")
}
