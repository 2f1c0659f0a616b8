package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/crontab"
	"github.com/aatumaykin/cronplan/internal/logger"
	"github.com/aatumaykin/cronplan/internal/metrics"
	"github.com/aatumaykin/cronplan/internal/planfile"
	"github.com/aatumaykin/cronplan/internal/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <planfile> [check|write|update|clear]",
	Short: "Run a plan file",
	Long: `Render the plan file and apply it in the given mode (default: check).

  check   print the generated block, leave the crontab untouched
  write   replace the whole crontab with the block
  update  insert or replace the plan's block, keep everything else
  clear   remove the plan's block, keep everything else`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := ""
		if len(args) == 2 {
			mode = args[1]
		}
		return runPlan(cmd, args[0], mode)
	},
}

// newModeCmd creates the "<mode> <planfile>" shortcut for "run <planfile> <mode>".
func newModeCmd(mode runner.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode) + " <planfile>",
		Short: fmt.Sprintf("Shortcut for 'run <planfile> %s'", mode),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0], string(mode))
		},
	}
}

func runPlan(cmd *cobra.Command, path, modeName string) error {
	mode, err := runner.ParseMode(modeName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	file, err := planfile.Load(path)
	if err != nil {
		return fmt.Errorf(constants.MsgErrorLoadingPlan, path, err)
	}
	p, err := file.Plan(cfg.Jobs.Interpreter)
	if err != nil {
		return fmt.Errorf(constants.MsgErrorLoadingPlan, path, err)
	}

	// --user wins over the plan file, the plan file over the config.
	user := crontabUser
	if user == "" {
		user = p.User()
	}
	if user == "" {
		user = cfg.Crontab.User
	}

	log.Debug("plan loaded",
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "plan", Value: p.Name()},
		logger.Field{Key: "jobs", Value: len(p.Jobs())},
		logger.Field{Key: "user", Value: user},
	)

	store := crontab.NewCommandStore(cfg.Crontab.Binary, user, log)
	opts := []runner.Option{runner.WithOutput(cmd.OutOrStdout())}
	if cfg.Metrics.Textfile != "" {
		opts = append(opts, runner.WithMetrics(metrics.New(cfg.Metrics.Namespace), cfg.Metrics.Textfile))
	}
	r := runner.New(crontab.NewSynchronizer(store, log), log, opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = r.Run(ctx, p, mode)
	return err
}
